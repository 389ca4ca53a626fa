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

	"hospital-gin/internal/config"
	"hospital-gin/internal/database"
	"hospital-gin/internal/handlers"
	"hospital-gin/internal/routes"
	"hospital-gin/internal/services"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital",
		Short: "Hospital management portal",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema, seed the admin account and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema and seed the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			logger.Info().Msg("migration complete")
			return nil
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "hospital").Logger()
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return nil, logger, err
	}
	if cfg.UsesFallbackSecrets() {
		logger.Warn().Msg("using development fallback SECRET_KEY or ADMIN_PASS; set both before deploying")
	}
	return cfg, logger, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminUser, cfg.AdminPass, logger); err != nil {
		return nil, err
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("connected to database")
	return db, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (session.Store, func(), error) {
	if cfg.SessionStore == "redis" {
		rs, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	return session.NewGormStore(db), func() {}, nil
}

func runServer() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to prepare database")
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	store, closeStore, err := openSessionStore(ctx, cfg, db)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open session store")
		return err
	}
	defer closeStore()

	sessions := session.NewManager(store, cfg.SecretKey, cfg.SessionTTL)
	svc := services.New(db, sessions, logger)
	h := handlers.New(svc, sessions, logger, cfg.IsProduction())

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.New(h, sessions, logger, routes.Options{CORSOrigins: cfg.CORSOrigins})

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.ListenPort).Str("session_store", cfg.SessionStore).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
