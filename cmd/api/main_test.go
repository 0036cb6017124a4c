package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/Lawmlor123/run-app/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errListen = context.Canceled

func testConfig() config.Config {
	return config.Config{ServerPort: ":0", LocationTimeoutSec: 1}
}

func TestRunHandlesSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)

	listenCalled := false
	listen := func(_ *fiber.App, _ string) error {
		listenCalled = true
		return nil
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), testConfig(), nil, nil, signals, listen); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !listenCalled {
		t.Fatalf("expected listen to be called")
	}
}

func TestRunContextCancel(t *testing.T) {
	signals := make(chan os.Signal, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, testConfig(), nil, nil, signals, func(_ *fiber.App, _ string) error { return nil }); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenError(t *testing.T) {
	signals := make(chan os.Signal, 1)

	err := Run(context.Background(), testConfig(), nil, nil, signals, func(_ *fiber.App, _ string) error {
		return errListen
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunDefaultListen(t *testing.T) {
	signals := make(chan os.Signal, 1)

	oldListen := defaultListen
	defaultListen = func(_ *fiber.App, _ string) error { return nil }
	defer func() { defaultListen = oldListen }()

	go func() {
		signals <- syscall.SIGINT
	}()

	if err := Run(context.Background(), testConfig(), nil, nil, signals, nil); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRealMainWiresDeps(t *testing.T) {
	calledNotify := false
	calledRun := false
	deps := mainDeps{
		loadConfig:   testConfig,
		newLogger:    func() (*zap.Logger, error) { return nil, errListen },
		connectRedis: func(config.Config) *redis.Client { return nil },
		notify: func(chan<- os.Signal, ...os.Signal) {
			calledNotify = true
		},
		run: func(_ context.Context, _ config.Config, _ *zap.Logger, _ *redis.Client, _ <-chan os.Signal, _ ListenFunc) error {
			calledRun = true
			return errListen
		},
	}

	realMain(deps)
	if !calledNotify || !calledRun {
		t.Fatalf("expected notify and run to be called")
	}
}

func TestMainUsesRunner(t *testing.T) {
	oldProvider := mainDepsProvider
	oldRunner := mainRunner
	defer func() {
		mainDepsProvider = oldProvider
		mainRunner = oldRunner
	}()

	called := false
	mainDepsProvider = func() mainDeps { return mainDeps{} }
	mainRunner = func(mainDeps) { called = true }

	main()
	if !called {
		t.Fatalf("expected runner to be invoked")
	}
}
