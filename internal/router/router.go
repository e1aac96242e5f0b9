// Package router wires services, handlers and middleware into the HTTP API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "personalfinance/internal/docs" // Import swagger docs
	"personalfinance/internal/handlers"
	"personalfinance/internal/middleware"
	"personalfinance/internal/services"
	"personalfinance/internal/validator"
)

// New builds the Gin engine with every route registered. Summary writes for
// a user are serialized through the single SummaryServicer created here.
func New(db *gorm.DB, tokens *middleware.TokenIssuer) *gin.Engine {
	validator.Register()

	userService := services.NewUserService(db)
	summaryService := services.NewSummaryService(db)
	transactionService := services.NewTransactionService(db, summaryService)
	budgetService := services.NewBudgetService(db, summaryService)
	auditService := services.NewAuditService(db)

	authHandler := handlers.NewAuthHandler(userService, tokens)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	protected.GET("/account-summary", summaryHandler.GetSummary)
	protected.POST("/account-summary/recompute", summaryHandler.Recompute)
	protected.GET("/budget-suggestion", budgetHandler.GetSuggestion)

	return router
}
