package bootstrap

import (
	"context"
	"log"

	"collectible-documenter-be/internal/config"
	"collectible-documenter-be/internal/controller"
	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/internal/repository/memory"
	"collectible-documenter-be/internal/service"
	"collectible-documenter-be/pkg/blob"
	"collectible-documenter-be/pkg/transcribe"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const itemDeletedTopic = "item.deleted"

type Container struct {
	// Controllers
	OAuthController   controller.IOAuthController
	CatalogController controller.ICatalogController
	BlobController    controller.IBlobController // nil unless the badger backend is active

	// Background Services (Exposed for main.go to run)
	CleanupService service.ICleanupService

	Logger logger.ILogger
}

func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Blob Store - process-wide singleton shared by state and images.
	// Local mode runs with no store at all: state persistence is a no-op
	// and uploaded images pass straight through.
	var blobStore blob.Store
	var urlSigner *blob.URLSigner
	if !cfg.App.LocalMode {
		switch cfg.Blob.Backend {
		case "badger":
			urlSigner = blob.NewURLSigner(cfg.App.JWTSecret)
			store, err := blob.NewBadgerStore(cfg.Blob.BadgerPath, cfg.App.BaseURL, urlSigner)
			if err != nil {
				log.Fatalf("[FATAL] Failed to open badger blob store: %v", err)
			}
			blobStore = store
			log.Printf("[INFO] Using Blob Backend: BADGER (%s)", cfg.Blob.BadgerPath)
		default:
			store, err := blob.NewMinioStore(cfg.Blob.Endpoint, cfg.Blob.AccessKey, cfg.Blob.SecretKey, cfg.Blob.UseSSL)
			if err != nil {
				log.Fatalf("[FATAL] Failed to init object store client: %v", err)
			}
			for _, container := range []string{cfg.Blob.StateContainer, cfg.Blob.ImageContainer} {
				if err := store.EnsureContainer(ctx, container); err != nil {
					log.Printf("[WARN] Failed to ensure container %s: %v", container, err)
				}
			}
			blobStore = store
			log.Printf("[INFO] Using Blob Backend: MINIO (%s)", cfg.Blob.Endpoint)
		}
	} else {
		log.Printf("[INFO] LOCAL_MODE enabled: state persistence disabled, images passed through")
	}

	// 3. Speech Provider - loaded once, shared by every request.
	var speechProvider transcribe.Provider
	if cfg.Transcribe.GeminiAPIKey != "" {
		provider, err := transcribe.NewGeminiProvider(ctx, cfg.Transcribe.GeminiAPIKey, cfg.Transcribe.Model)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize speech provider: %v", err)
		}
		speechProvider = provider
		log.Printf("[INFO] Using Speech Provider: GEMINI (%s)", cfg.Transcribe.Model)
	} else {
		log.Printf("[WARN] GOOGLE_GEMINI_API_KEY not set, transcription requests will fail")
	}

	// 4. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 5. In-Memory Stores
	sessionRepo := memory.NewSessionRepository()
	nonceRepo := memory.NewNonceRepository()

	// 6. Services
	oauthService, err := service.NewOAuthService(ctx, cfg.OAuth, cfg.App.JWTSecret, nonceRepo, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize OAuth service: %v", err)
	}

	stateService := service.NewStateService(blobStore, cfg.Blob.StateContainer, cfg.App.LocalMode, sysLogger)
	imageService := service.NewImageService(blobStore, cfg.Blob.ImageContainer, cfg.App.LocalMode, sysLogger)
	transcriptionService := service.NewTranscriptionService(speechProvider, sysLogger)
	publisherService := service.NewPublisherService(itemDeletedTopic, pubSub)
	cleanupService := service.NewCleanupService(pubSub, itemDeletedTopic, imageService, sysLogger)

	catalogService := service.NewCatalogService(
		sessionRepo,
		stateService,
		imageService,
		transcriptionService,
		publisherService,
		sysLogger,
	)

	// 7. Controllers
	c := &Container{
		OAuthController:   controller.NewOAuthController(oauthService, cfg.App.ClientURL),
		CatalogController: controller.NewCatalogController(catalogService),
		CleanupService:    cleanupService,
		Logger:            sysLogger,
	}
	if urlSigner != nil {
		c.BlobController = controller.NewBlobController(blobStore, urlSigner)
	}
	return c
}
