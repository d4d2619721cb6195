package server

import (
	"github.com/davisdeatonphotography/dawarich/internal/area"
	"github.com/davisdeatonphotography/dawarich/internal/auth"
	"github.com/davisdeatonphotography/dawarich/internal/config"
	"github.com/davisdeatonphotography/dawarich/internal/export"
	"github.com/davisdeatonphotography/dawarich/internal/importer"
	"github.com/davisdeatonphotography/dawarich/internal/point"
	"github.com/davisdeatonphotography/dawarich/internal/stats"
	"github.com/davisdeatonphotography/dawarich/internal/stream"
	"github.com/davisdeatonphotography/dawarich/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	apiKeyMiddleware := auth.APIKeyMiddleware(authSvc)

	pointSvc := point.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	point.RegisterRoutes(s.App.Group("/points"), pointSvc, s.Cfg, apiKeyMiddleware, jwtMiddleware)
	trip.RegisterRoutes(s.App.Group("/trips"), trip.NewService(pointSvc), s.Cfg, jwtMiddleware)
	importer.RegisterRoutes(s.App.Group("/imports"), importer.NewService(s.DB, pointSvc, s.Stream), jwtMiddleware)
	area.RegisterRoutes(s.App.Group("/areas"), area.NewService(s.DB), jwtMiddleware)
	stats.RegisterRoutes(s.App.Group("/stats"), stats.NewService(pointSvc), jwtMiddleware)
	export.RegisterRoutes(s.App.Group("/exports"), export.NewService(s.DB, pointSvc), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
