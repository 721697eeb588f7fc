package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"taskdeck/configs"
	v1 "taskdeck/internal/api/v1"
	"taskdeck/internal/api/v1/handlers"
	"taskdeck/internal/authz"
	"taskdeck/internal/events"
	"taskdeck/internal/middleware"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
	"taskdeck/internal/token"
	"taskdeck/pkg/database"
	"taskdeck/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := repository.CreateTableIfNotExists(db); err != nil {
		logger.ErrorLogger.Error("Creating tables failed", zap.Error(err))
		return
	}

	redisClient := database.ConnectRedis(cfg)
	defer redisClient.Close()

	store := repository.NewStore(db).WithCache(redisClient)
	tokens := token.NewManager([]byte(cfg.JWTSecret))
	engine := authz.NewEngine(store)

	hub := events.NewHub()
	go hub.Run()

	h := &handlers.Handler{
		Auth:              service.NewAuthService(store, tokens),
		Categories:        service.NewCategoryService(store, store, engine),
		Tasks:             service.NewTaskService(store, store, store, engine),
		Subtasks:          service.NewSubtaskService(store, store, engine),
		Hub:               hub,
		RefreshCookieName: cfg.RefreshCookieName,
		CookieDomain:      cfg.CookieDomain,
	}

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, h, tokens)

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
