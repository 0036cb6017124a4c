package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lawmlor123/run-app/internal/config"
	"github.com/Lawmlor123/run-app/internal/db"
	"github.com/Lawmlor123/run-app/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig   func() config.Config
	newLogger    func() (*zap.Logger, error)
	connectRedis func(config.Config) *redis.Client
	notify       func(chan<- os.Signal, ...os.Signal)
	run          func(context.Context, config.Config, *zap.Logger, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:   config.Load,
		newLogger:    func() (*zap.Logger, error) { return zap.NewProduction() },
		connectRedis: db.ConnectRedis,
		notify:       signal.Notify,
		run:          Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	log, err := deps.newLogger()
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	rdb := deps.connectRedis(cfg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting run-app", zap.String("port", cfg.ServerPort))
	if err := deps.run(context.Background(), cfg, log, rdb, signals, nil); err != nil {
		log.Error("server exited with error", zap.Error(err))
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

// Run starts the HTTP server and waits for termination signals.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	srv := server.NewServer(cfg, rdb, log)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.App.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
