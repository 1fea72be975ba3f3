// Package server assembles the HTTP surface: services over a store, the
// handlers over the services, and the gin router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// Services is the set of business services behind the API.
type Services struct {
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Budgets      services.BudgetServicer
	Analytics    services.AnalyticsServicer
}

// NewServices wires every service to s.
func NewServices(s store.Store) Services {
	categories := services.NewCategoryService(s)
	return Services{
		Categories:   categories,
		Transactions: services.NewTransactionService(s, categories),
		Budgets:      services.NewBudgetService(s, categories),
		Analytics:    services.NewAnalyticsService(s, categories),
	}
}

// Options tunes the router.
type Options struct {
	CORSOrigin string
	Swagger    bool
}

// NewRouter builds the gin engine serving /api/health and /api/v1.
func NewRouter(svcs Services, opts Options) *gin.Engine {
	transactionHandler := handlers.NewTransactionHandler(svcs.Transactions)
	categoryHandler := handlers.NewCategoryHandler(svcs.Categories)
	budgetHandler := handlers.NewBudgetHandler(svcs.Budgets)
	analyticsHandler := handlers.NewAnalyticsHandler(svcs.Analytics)
	exportHandler := handlers.NewExportHandler(svcs.Transactions, svcs.Categories)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigin))

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.GET("/categories", categoryHandler.GetCategories)

	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.SetBudget)
	budgets.DELETE("/:month/:category", budgetHandler.DeleteBudget)

	analytics := v1.Group("/analytics")
	analytics.GET("/monthly", analyticsHandler.GetMonthly)
	analytics.GET("/categories", analyticsHandler.GetCategories)
	analytics.GET("/budget", analyticsHandler.GetBudgetComparison)
	analytics.GET("/insights", analyticsHandler.GetInsights)
	analytics.GET("/dashboard", analyticsHandler.GetDashboard)

	v1.GET("/export/transactions.csv", exportHandler.ExportTransactions)

	return router
}
