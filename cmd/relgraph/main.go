// Package main provides the relgraph CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/relgraph/relgraph/internal/server/api"
	"github.com/relgraph/relgraph/internal/server/config"
	"github.com/relgraph/relgraph/pkg/graph"
)

// Version is the current relgraph version.
var Version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "relgraph",
	Short: "relgraph - in-memory schema-driven graph repository",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the relgraph version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("relgraph " + Version)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relgraph HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to yaml config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func serve(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	var schema *graph.Schema
	if cfg.SchemaPath != "" {
		var err error
		schema, err = graph.LoadSnapshot(cfg.SchemaPath)
		if err != nil {
			return err
		}
		logger.Info("loaded schema snapshot", slog.String("path", cfg.SchemaPath))
	}

	repo, err := graph.New(schema)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	api.New(repo, logger).Routes(r)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting relgraph server", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
