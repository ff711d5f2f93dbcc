package router

import (
	"context"
	"fmt"

	"stockbook/internal/config"
	"stockbook/internal/handler"
	"stockbook/internal/middleware"
	"stockbook/internal/render"
	"stockbook/internal/repository"
	"stockbook/internal/service"
	"stockbook/internal/storage"
	"stockbook/internal/worker"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Gateway
func New(ctx context.Context, cfg *config.Config, gw storage.Gateway) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(gw)
	ledgerRepo := repository.NewLedgerRepository(gw)
	settingsRepo := repository.NewSettingsRepository(gw)
	authRepo := repository.NewAuthRepository(gw)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc, err := service.NewInventoryService(ctx, catalogRepo, ledgerRepo)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	reportSvc := service.NewReportService(inventorySvc)
	settingsSvc := service.NewSettingsService(settingsRepo)
	authSvc := service.NewAuthService(authRepo, cfg)

	// Worker dispatcher — export rendering runs off the request path
	dispatcher := worker.NewDispatcher(64)
	exportSvc := service.NewExportService(reportSvc, settingsSvc, dispatcher, cfg.ExportDir,
		render.WriteReportCSV, render.WriteReportPDF)
	dispatcher.Start(ctx, cfg.ExportWorkers)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(inventorySvc)
	transactionsH := handler.NewTransactionsHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc, exportSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(gw))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)

		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.POST("", productsH.Create)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionsH.List)
			transactions.POST("/sale", transactionsH.RecordSale)
			transactions.POST("/purchase", transactionsH.RecordPurchase)
			transactions.POST("/removal", transactionsH.RecordRemoval)
		}

		v1.GET("/dashboard", reportsH.Dashboard)
		v1.GET("/reports", reportsH.Report)

		exports := v1.Group("/exports")
		{
			exports.POST("", reportsH.RequestExport)
			exports.GET("/:id", reportsH.GetExport)
		}

		v1.GET("/settings", settingsH.Get)
		v1.PUT("/settings", settingsH.Update)
	}

	return r, nil
}
