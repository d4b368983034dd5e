package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/rohits-web03/meshvault/internal/api"
	"github.com/rohits-web03/meshvault/internal/api/services"
	"github.com/rohits-web03/meshvault/internal/config"
	"github.com/rohits-web03/meshvault/internal/logger"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
)

// @title MeshVault API
// @version 1.0
// @description Upload, catalogue and share 3D models.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: !cfg.IsProduction(),
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repositories.ConnectDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	store, err := storage.NewR2Store(ctx, cfg.R2, log)
	if err != nil {
		return err
	}

	clock := services.RealClock{}
	sessionManager := services.NewSessionManager(cfg.JWTSecret, cfg.SessionMaxAge, clock)
	modelRepo := repositories.NewModelRepository(db)
	uploader := services.NewUploader(store, modelRepo, clock, log)
	categoryRepo := repositories.NewCategoryRepository(db)
	userRepo := repositories.NewUserRepository(db)

	handler := api.SetupRouter(api.Dependencies{
		Config:      cfg,
		Log:         log,
		Sessions:    sessionManager,
		Identity:    services.NewIdentityService(userRepo, sessionManager, log),
		Provider:    services.NewGoogleProvider(cfg),
		Models:      services.NewModelService(modelRepo, categoryRepo, uploader, clock, log),
		Categories:  services.NewCategoryService(categoryRepo),
		Uploader:    uploader,
		CookieStore: sessions.NewCookieStore([]byte(cfg.SessionSecret)),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting MeshVault server", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
