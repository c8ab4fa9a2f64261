package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/maxviazov/recipe-catalog-service/internal/config"
	"github.com/maxviazov/recipe-catalog-service/internal/handler"
	"github.com/maxviazov/recipe-catalog-service/internal/logger"
	"github.com/maxviazov/recipe-catalog-service/internal/metrics"
	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/repository"
	"github.com/maxviazov/recipe-catalog-service/internal/repository/postgres"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
	"github.com/maxviazov/recipe-catalog-service/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := migrations.Up(ctx, db.Pool()); err != nil {
			return err
		}
		appLogger.Info().Msg("migrations applied")
	}

	links, err := navigator.NewLinkBuilder(cfg.App.PublicURL)
	if err != nil {
		return fmt.Errorf("public url: %w", err)
	}

	rec := metrics.Init(cfg.Metrics.Enabled)
	policy := cfg.PaginationPolicy()
	pool := db.Pool()

	recipeSvc := service.NewRecipeService(
		postgres.NewRecipeRepository(pool),
		postgres.NewReviewRepository(pool),
		policy, rec, appLogger,
	)
	ingredientSvc := service.NewIngredientService(postgres.NewIngredientRepository(pool), policy, rec, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router, handler.Deps{
		Pinger:      postgres.NewPinger(pool),
		Recipes:     recipeSvc,
		Ingredients: ingredientSvc,
		Policy:      policy,
		Ad:          cfg.AdSlot(),
		Links:       links,
		Metrics:     rec,
		Logger:      appLogger,
	})
	if cfg.Metrics.Enabled {
		router.GET(metrics.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.App.Env).
			Str("version", cfg.App.Version).
			Bool("ads", cfg.Ads.Enabled).
			Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
