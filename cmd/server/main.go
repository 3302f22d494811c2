package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"irportal/internal/config"
	"irportal/internal/facade"
	"irportal/internal/handler"
	"irportal/internal/middleware"
	"irportal/internal/repository"
	"irportal/internal/service"
	"irportal/internal/storage/files"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
		"file_store", cfg.FileStore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend (postgres or kv)
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	// Uploaded files
	fileStore, err := newFileStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open file store: %v", err)
	}

	// Services and request facade
	gateway := service.NewGateway(store, logger)
	api := facade.New(gateway, logger)
	logger.Info("services initialized", "routes", len(api.Routes()))

	// Handlers
	apiHandler := handler.NewFacadeHandler(api, logger)
	handlers := &handler.Handlers{
		API:     apiHandler,
		Uploads: handler.NewUploadHandler(apiHandler, fileStore, logger),
		Files:   handler.NewFileHandler(fileStore, logger),
		Health:  handler.NewHealthHandler(store.Backend, store.Ping, logger),
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handlers)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logging → Metrics → Routes
	h = middleware.Metrics()(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second, // multipart uploads up to 50 MB
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// newFileStore picks local disk or MinIO for uploads
func newFileStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (files.Store, error) {
	switch cfg.FileStore {
	case config.FileStoreMinio:
		return files.NewMinioStore(ctx, files.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
	case config.FileStoreDisk:
		logger.Info("storing uploads on disk", "dir", cfg.UploadDir)
		return files.NewDiskStore(cfg.UploadDir)
	default:
		return nil, errors.New("unknown FILE_STORE " + cfg.FileStore + " (want disk or minio)")
	}
}
