package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/config"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/internal/presentation/http/handler"
	"github.com/mlegall/facturio-api/internal/presentation/http/middleware"
	"github.com/mlegall/facturio-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Contact     *handler.ContactHandler
	Document    *handler.DocumentHandler
	Transaction *handler.TransactionHandler
	Proof       *handler.ProofHandler
	Attachment  *handler.AttachmentHandler
	Dashboard   *handler.DashboardHandler
	Settings    *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settings
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", h.Settings.Update)
	protected.POST("/settings/logo", h.Settings.UploadLogo)
	protected.GET("/settings/logo", h.Settings.GetLogo)
	protected.GET("/settings/export", h.Settings.Export)

	// Dashboard
	protected.GET("/dashboard/urssaf", h.Dashboard.Urssaf)
	protected.GET("/dashboard/export", h.Dashboard.Export)

	registerContactRoutes(protected, h)
	registerDocumentRoutes(protected, h, deps)
	registerTransactionRoutes(protected, h, deps)
	registerProofRoutes(protected, h)
}

func registerContactRoutes(protected *gin.RouterGroup, h *Handlers) {
	contacts := protected.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.POST("", h.Contact.Create)
		contacts.GET("/:id", h.Contact.Get)
		contacts.PATCH("/:id", h.Contact.Update)
		contacts.DELETE("/:id", h.Contact.Delete)
	}
}

func registerDocumentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	documents := protected.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.POST("", middleware.Idempotency(idempotency), h.Document.Create)
		documents.GET("/:id", h.Document.Get)
		documents.PATCH("/:id", h.Document.Update)
		documents.GET("/:id/pdf", h.Document.GetPdf)

		// Lifecycle transitions draw legal numbers, so retries must replay
		documents.POST("/:id/send", middleware.IdempotencyRequired(idempotency), h.Document.Send)
		documents.POST("/:id/pay", middleware.IdempotencyRequired(idempotency), h.Document.Pay)
		documents.POST("/:id/cancel", middleware.Idempotency(idempotency), h.Document.Cancel)
		documents.POST("/:id/convert", middleware.Idempotency(idempotency), h.Document.Convert)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.POST("", middleware.IdempotencyRequired(idempotency), h.Transaction.Create)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PATCH("/:id", h.Transaction.Update)
		transactions.DELETE("/:id", h.Transaction.Delete)

		// Receipts attached to a ledger entry
		transactions.POST("/:id/attachments", h.Attachment.Upload)
		transactions.GET("/:id/attachments", h.Attachment.List)
	}

	attachments := protected.Group("/attachments")
	{
		attachments.GET("/:id/download", h.Attachment.Download)
		attachments.DELETE("/:id", h.Attachment.Delete)
	}
}

func registerProofRoutes(protected *gin.RouterGroup, h *Handlers) {
	proofs := protected.Group("/proofs")
	{
		proofs.POST("", h.Proof.Upload)
		proofs.GET("/:id/download", h.Proof.Download)
	}

	bundles := protected.Group("/proof-bundles")
	{
		bundles.GET("/:transactionId", h.Proof.GetBundle)
		bundles.PATCH("/:transactionId", h.Proof.UpdateBundle)
		bundles.POST("/:transactionId/cession-pdf", h.Proof.CessionPdf)
	}
}
