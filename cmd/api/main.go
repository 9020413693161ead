package main

import (
	"fmt"
	"net/http"
	"os"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/handlers"
	"spendtrack/internal/logger"
	"spendtrack/internal/middleware"
	"spendtrack/internal/notify"
	"spendtrack/internal/report"
	"spendtrack/internal/services"
	"spendtrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendtrack/internal/docs" // Import swagger docs
)

// @title           Spendtrack API
// @version         1.0
// @description     Spendtrack is an expense tracking service for recording spending, setting per-category monthly budgets, and generating spend reports.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Pick the breach alert sink: broker when configured, log otherwise
	var sink notify.Sink
	if appConfig.AMQPURL != "" {
		amqpSink, err := notify.NewAMQPSink(appConfig.AMQPURL, appConfig.AlertExchange, appConfig.AlertQueue)
		if err != nil {
			return fmt.Errorf("failed to connect alert sink: %w", err)
		}
		defer amqpSink.Close()
		sink = amqpSink
		log.Infof("Publishing budget breach alerts to %s/%s", appConfig.AlertExchange, appConfig.AlertQueue)
	} else {
		sink = notify.NewLogSink()
		log.Info("AMQP_URL not set, budget breach alerts will be logged")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	aggregationService := services.NewAggregationService(db)
	limitService := services.NewLimitService(db, aggregationService, sink)
	expenseService := services.NewExpenseService(db, aggregationService, limitService)
	budgetService := services.NewBudgetService(db, aggregationService)
	reportService := services.NewReportService(db, aggregationService, userService, report.NewCSVRenderer())
	chartService := services.NewChartService(aggregationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	reportHandler := handlers.NewReportHandler(reportService, chartService)

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

	// API group
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/range", expenseHandler.GetExpensesByDateRange)
	expenses.GET("/total", expenseHandler.GetTotalExpenses)
	expenses.GET("/category/:category", expenseHandler.GetExpensesByCategory)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/monthly/:year/:month", reportHandler.GetMonthlyReport)
	reports.GET("/yearly/:year", reportHandler.GetYearlyReport)
	reports.GET("/chart/pie", reportHandler.GetPieChart)
	reports.GET("/expenses-by-category", reportHandler.GetExpensesByCategory)

	log.Infof("Starting Spendtrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
