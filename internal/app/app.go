package app

import (
	"database/sql"
	"fmt"

	"careerhub_backend/database"
	"careerhub_backend/internal/config"
	"careerhub_backend/internal/handlers"
	"careerhub_backend/internal/logger"
	"careerhub_backend/internal/middleware"
	"careerhub_backend/internal/repositories"
	"careerhub_backend/internal/routes"
	"careerhub_backend/internal/services"
	"careerhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, sqlDB *sql.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, sqlDB)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter()

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, sqlDB *sql.DB) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	postingRepo := repositories.NewPostgresPostingRepository(sqlDB)
	applicationRepo := repositories.NewPostgresApplicationRepository(sqlDB)

	// --- Инициализация сервисов ---
	postingService := services.NewPostingService(postingRepo, cfg.Rules.StrictTransitions)
	applicationService := services.NewApplicationService(applicationRepo, postingRepo, cfg.Rules.StrictTransitions)

	return &services.ServiceContainer{
		PostingService:     postingService,
		ApplicationService: applicationService,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, cfg)

	return &handlers.AppHandlers{
		PostingHandler:     handlers.NewPostingHandler(baseHandler, services.PostingService, services.ApplicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
