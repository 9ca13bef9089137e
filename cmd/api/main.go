package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/config"
	"github.com/mlegall/facturio-api/internal/infrastructure/database"
	"github.com/mlegall/facturio-api/internal/infrastructure/repository"
	"github.com/mlegall/facturio-api/internal/infrastructure/storage"
	"github.com/mlegall/facturio-api/internal/presentation/http/handler"
	"github.com/mlegall/facturio-api/internal/presentation/http/routes"
	"github.com/mlegall/facturio-api/pkg/pdfgen"
	"github.com/mlegall/facturio-api/pkg/utils"
	"github.com/spf13/afero"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Initialize object store and PDF renderer
	store := storage.NewFileStore(afero.NewOsFs(), cfg.Storage.Path)
	renderer := pdfgen.NewRenderer()

	// Initialize repositories
	contactRepo := repository.NewContactRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	documentLineRepo := repository.NewDocumentLineRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	proofRepo := repository.NewProofRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	contactService := service.NewContactService(contactRepo)
	documentService := service.NewDocumentService(documentRepo, documentLineRepo, sequenceRepo,
		contactRepo, transactionRepo, settingsRepo, store, renderer)
	transactionService := service.NewTransactionService(transactionRepo, attachmentRepo, store)
	proofService := service.NewProofService(proofRepo, transactionRepo, settingsRepo, store,
		renderer, cfg.Storage.UploadMaxSize)
	attachmentService := service.NewAttachmentService(attachmentRepo, transactionRepo, store,
		cfg.Storage.UploadMaxSize, cfg.Storage.MaxAttachments)
	dashboardService := service.NewDashboardService(transactionRepo)
	settingsService := service.NewSettingsService(settingsRepo, contactRepo, documentRepo,
		transactionRepo, store, cfg.Storage.UploadMaxSize)

	// Periodic cleanup of expired idempotency keys
	go service.PurgeExpiredIdempotencyKeys(context.Background(), idempotencyRepo, time.Hour)

	// Initialize handlers
	handlers := &routes.Handlers{
		Contact:     handler.NewContactHandler(contactService),
		Document:    handler.NewDocumentHandler(documentService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Proof:       handler.NewProofHandler(proofService),
		Attachment:  handler.NewAttachmentHandler(attachmentService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Settings:    handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
