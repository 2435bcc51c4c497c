package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"portfoliocms/config"
	"portfoliocms/internal/adapters/auth"
	"portfoliocms/internal/adapters/email"
	"portfoliocms/internal/adapters/storage"
	delivery "portfoliocms/internal/delivery/http"
	"portfoliocms/internal/delivery/http/controllers"
	"portfoliocms/internal/delivery/http/middleware"
	"portfoliocms/internal/domain"
	"portfoliocms/internal/repository/postgres"
	"portfoliocms/internal/services"
)

// serviceTimeout bounds every service-level database call.
const serviceTimeout = 5 * time.Second

// @title Portfolio CMS API
// @version 1.0
// @description Content API for a personal portfolio site: public section reads, a password-gated admin surface, image upload, and a contact form.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	verifier, err := auth.NewSecretVerifier(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		logger.Error("invalid admin credential configuration", "err", err)
		os.Exit(1)
	}
	tokens := auth.NewJWTCapability(cfg.JWTSecret)

	var store domain.ImageStore
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			PathStyle:       cfg.Storage.PathStyle,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
		})
		if err != nil {
			logger.Error("failed to initialize object store", "err", err)
			os.Exit(1)
		}
	default:
		logger.Warn("using in-memory image store; uploads do not survive restarts")
		store = storage.NewMemoryStore("http://localhost:" + cfg.Port + "/images")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	entryRepo := postgres.NewEntryRepository(db)
	contentSvc := services.NewContentService(entryRepo, serviceTimeout)
	adminSvc := services.NewAdminService(entryRepo, serviceTimeout)
	contactSvc := services.NewContactService(mailer, renderer, cfg.Mailer.ContactEmail)
	uploader := services.NewImageUploader(store)

	contentCtrl := controllers.NewContentController(logger, contentSvc)
	adminCtrl := controllers.NewAdminController(logger, contentSvc, adminSvc, verifier, tokens, uploader, cfg.JWTExpiry)
	contactCtrl := controllers.NewContactController(logger, contactSvc)

	requireAdmin := middleware.RequireAdmin(tokens, verifier, logger)
	mux := delivery.NewRouter(contentCtrl, adminCtrl, contactCtrl, requireAdmin)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
