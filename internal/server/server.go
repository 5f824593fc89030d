// Package server contains the HTTP handlers for the Sphere API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"sphere/internal/cache"
	"sphere/internal/config"
	"sphere/internal/database"
	"sphere/internal/middleware"
	"sphere/internal/models"
	"sphere/internal/repository"
	"sphere/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	articleRepo    repository.ArticleRepository
	followRepo     repository.FollowRepository
	userService    *service.UserService
	articleService *service.ArticleService
	socialService  *service.SocialService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	followRepo := repository.NewFollowRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("sphere-api"),
		userRepo:       userRepo,
		articleRepo:    articleRepo,
		followRepo:     followRepo,
	}
	server.userService = service.NewUserService(userRepo, articleRepo, followRepo)
	server.articleService = service.NewArticleService(articleRepo, userRepo)
	server.socialService = service.NewSocialService(userRepo, articleRepo, followRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses. Credentials must be allowed: the session rides in a cookie.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
// The /users and /articles paths mirror the public API contract.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is listening..")
	})

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Sphere Backend Metrics Dashboard",
	}))

	// User routes. Auth endpoints are rate limited per IP on top of the
	// global limiter.
	users := app.Group("/users")
	users.Post("/sign-up", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "sign_up"), s.SignUp)
	users.Post("/sign-in", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "sign_in"), s.SignIn)
	users.Post("/sign-out", s.SignOut)
	users.Get("/me", middleware.AuthRequired, s.Me)

	// Mutations under /users/update require a session. Specific
	// /update/:resource routes must come before the generic /:username.
	users.Put("/update/profile/:id", middleware.AuthRequired, s.UpdateProfile)
	users.Put("/update/archives/:id", middleware.AuthRequired, s.ArchiveArticle)
	users.Delete("/update/archives/:id", middleware.AuthRequired, s.UnarchiveArticle)
	users.Put("/update/following/:id", middleware.AuthRequired, s.Follow)
	users.Delete("/update/following/:id", middleware.AuthRequired, s.Unfollow)

	// Generic /:username route must be last
	users.Get("/:username", s.GetProfile)

	// Article routes
	articles := app.Group("/articles")
	articles.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 5, time.Minute, "create_article"), s.CreateArticle)
	articles.Get("/", s.GetArticles)
	articles.Put("/update/likes/:id", middleware.AuthRequired, s.LikeArticle)
	articles.Delete("/update/likes/:id", middleware.AuthRequired, s.UnlikeArticle)
	articles.Put("/update/responses/:id", middleware.AuthRequired, s.AddResponse)
	articles.Delete("/update/responses/:id", middleware.AuthRequired, s.DeleteResponse)
	articles.Get("/:id", s.GetArticle)
	articles.Put("/:id", middleware.AuthRequired, s.EditArticle)
	articles.Delete("/:id", middleware.AuthRequired, s.DeleteArticle)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is a soft dependency: the API degrades to uncached reads and
	// unthrottled auth without it, so readiness only reports it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Sphere",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Sphere API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
