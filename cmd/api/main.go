package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/config"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/database"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/handlers"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/logger"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/middleware"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/models"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/notify"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/services"
	"github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/halsabbah10/AI-powered-Faculty-Conference-Travel-System/internal/docs" // Import swagger docs
)

// @title           Faculty Conference Travel System API
// @version         1.0
// @description     Travel request approval workflow with budget tracking for faculty conference travel.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators with gin's binding engine
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	authService := services.NewAuthService(db, appConfig, auditService)
	ledgerService := services.NewLedgerService(db)
	restrictedDateService := services.NewRestrictedDateService(db)
	requestService := services.NewRequestService(db, ledgerService, restrictedDateService, auditService, notify.NewLogNotifier())

	// The shared budget row must exist before any request can be decided
	if err := ledgerService.EnsureBudget(); err != nil {
		return fmt.Errorf("failed to ensure budget row: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	requestHandler := handlers.NewRequestHandler(requestService)
	budgetHandler := handlers.NewBudgetHandler(ledgerService, auditService)
	restrictedDateHandler := handlers.NewRestrictedDateHandler(restrictedDateService)
	activityHandler := handlers.NewActivityHandler(auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.SessionAuth(authService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	// Request routes
	requests := protected.Group("/requests")
	requests.POST("", middleware.RequireRole(models.RoleProfessor), requestHandler.Submit)
	requests.GET("", requestHandler.ListOwn)
	requests.GET("/pending", middleware.RequireRole(models.RoleApprover, models.RoleAccountant), requestHandler.ListPending)
	requests.GET("/search", requestHandler.Search)
	requests.GET("/travel-status", requestHandler.TravelStatus)
	requests.GET("/:id", requestHandler.GetByID)
	requests.POST("/:id/review", middleware.RequireRole(models.RoleApprover), requestHandler.BeginReview)
	requests.POST("/:id/decision", middleware.RequireRole(models.RoleApprover), requestHandler.Decide)
	requests.POST("/:id/cancel", middleware.RequireRole(models.RoleProfessor), requestHandler.Cancel)
	requests.POST("/:id/reverse", middleware.RequireRole(models.RoleAccountant), requestHandler.Reverse)

	// Budget routes
	budget := protected.Group("/budget")
	budget.GET("", budgetHandler.GetSummary)
	budget.PUT("", middleware.RequireRole(models.RoleAccountant), budgetHandler.SetAllocation)
	budget.GET("/history", middleware.RequireRole(models.RoleAccountant, models.RoleApprover), budgetHandler.GetHistory)

	// Restricted date routes
	restricted := protected.Group("/restricted-dates")
	restricted.GET("", restrictedDateHandler.List)
	restricted.POST("", middleware.RequireRole(models.RoleAccountant), restrictedDateHandler.Create)
	restricted.DELETE("/:id", middleware.RequireRole(models.RoleAccountant), restrictedDateHandler.Delete)

	// Activity log
	protected.GET("/activity", middleware.RequireRole(models.RoleAccountant, models.RoleApprover), activityHandler.List)

	log.Infof("Starting travel system backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
