package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/eventify/eventify-web/internal/jobs"
	"github.com/eventify/eventify-web/service"
	"github.com/eventify/eventify-web/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web frontend",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := service.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Initialize database
		db, err := storage.New(config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sweeper := jobs.NewTokenSweeper(db, config.Tokens.TTL, config.Tokens.SweepInterval)
		sweeper.Start(ctx)
		defer sweeper.Stop()

		// Initialize Echo
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		svc := service.New(db, config)
		if err := svc.RegisterRoutes(e); err != nil {
			return err
		}

		addr := fmt.Sprintf(":%s", config.Port)
		slog.Info("eventify web starting",
			"url", config.BaseURL,
			"port", config.Port,
			"environment", config.Environment,
			"api", config.API.BaseURL,
			"database", config.DBPath,
		)

		errCh := make(chan error, 1)
		go func() {
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
