package server

import (
	"time"

	"github.com/Lawmlor123/run-app/internal/config"
	"github.com/Lawmlor123/run-app/internal/location"
	"github.com/Lawmlor123/run-app/internal/route"
	"github.com/Lawmlor123/run-app/internal/session"
	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/Lawmlor123/run-app/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	Redis     *redis.Client
	Stream    *stream.Hub
	Locations *location.Service
	Sessions  *session.Service
	Routes    *route.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient, log.Named("stream"))
	fallback := geo.Coordinate{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng}
	locations := location.NewService(
		log.Named("location"),
		fallback,
		time.Duration(cfg.LocationTimeoutSec)*time.Second,
	)
	sessions := session.NewService(log.Named("session"), hub, locations)
	provider := route.NewORSClient(cfg.RoutingBaseURL, cfg.RoutingAPIKey, cfg.RoutingProfile)
	routes := route.NewService(log.Named("route"), provider, route.NewCache(redisClient))

	s := &Server{
		App:       app,
		Cfg:       cfg,
		Redis:     redisClient,
		Stream:    hub,
		Locations: locations,
		Sessions:  sessions,
		Routes:    routes,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	location.RegisterRoutes(s.App.Group("/location"), s.Locations)
	session.RegisterRoutes(s.App.Group("/session"), s.Sessions)
	route.RegisterRoutes(s.App.Group("/routes"), s.Routes, s.Locations)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
