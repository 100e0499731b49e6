package router

import (
	"finance-ledger/internal/config"
	"finance-ledger/internal/handler"
	"finance-ledger/internal/ledger"
	"finance-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, reserved ledger.ReservedCategories) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	// login/register, no auth required
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.GET("/me", handler.GetMe)
	protected.GET("/users", handler.ListUsers(db))

	categoryHandler := handler.NewCategoryHandler(ledger.NewCategoryService(db))
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	accountHandler := handler.NewAccountHandler(ledger.NewAccountService(db))
	protected.POST("/accounts", accountHandler.Create)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.Get)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(ledger.NewTransactionService(db))
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	// transfers have no update: delete and recreate instead
	transferHandler := handler.NewTransferHandler(ledger.NewTransferService(db, reserved))
	protected.POST("/transfers", transferHandler.Create)
	protected.GET("/transfers", transferHandler.List)
	protected.GET("/transfers/:id", transferHandler.Get)
	protected.DELETE("/transfers/:id", transferHandler.Delete)

	statsHandler := handler.NewStatsHandler(ledger.NewStatsService(db))
	protected.GET("/stats/summary", statsHandler.Summary)
	protected.GET("/stats/categories", statsHandler.ByCategory)
	protected.GET("/stats/monthly", statsHandler.Monthly)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
