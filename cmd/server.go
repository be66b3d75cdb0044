package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"service-booking/internal/backend"
	"service-booking/internal/data/repository"
	"service-booking/internal/wire"
	"service-booking/pkg/database"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("version", Version),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.InitDB(ctx, config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			logger.Info("Database connected successfully")

			if migrateUp {
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
				logger.Info("Database schema is up to date")
			}

			var kv database.KV
			if config.Redis.Addr != "" {
				kv, err = database.InitRedis(ctx, config.Redis)
				if err != nil {
					logger.Error("Failed to connect to redis", zap.Error(err))
					return err
				}
				logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
			} else {
				logger.Warn("REDIS_ADDR not set, pending bookings are kept in process memory")
				kv = database.NewMemoryKV()
			}
			defer kv.Close()

			repos := repository.NewRepository(db, kv, config.Booking, logger)
			client := backend.New(config.Backend.BaseURL, config.Backend.Timeout, logger)

			app := wire.Wiring(repos, client, config, logger,
				wire.HealthCheck{Name: "postgres", Ping: db.Ping},
				wire.HealthCheck{Name: "kv", Ping: kv.Ping},
			)

			return APIServer(ctx, app.Router, config.App.Port, logger)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply the database schema on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

// APIServer serves route until ctx is cancelled, then shuts down gracefully
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
