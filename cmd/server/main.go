package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/choretracker/internal/auth"
	"github.com/mmynk/choretracker/internal/config"
	"github.com/mmynk/choretracker/internal/digest"
	"github.com/mmynk/choretracker/internal/middleware"
	"github.com/mmynk/choretracker/internal/server"
	"github.com/mmynk/choretracker/internal/service"
	"github.com/mmynk/choretracker/internal/storage/sqlite"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
	"github.com/mmynk/choretracker/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Metrics sees every call, logging sees the authenticated caller.
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	protected := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	var services []server.Service
	mount := func(path string, handler http.Handler) {
		services = append(services, server.Service{Path: path, Handler: handler})
	}
	mount(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, slog.Default()), public))
	mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), protected))
	mount(apiconnect.NewEventServiceHandler(service.NewEventService(store), protected))
	mount(apiconnect.NewCostServiceHandler(service.NewCostService(store), protected))

	staticDir := ""
	if cfg.StaticPath != "" {
		staticDir, err = filepath.Abs(cfg.StaticPath)
		if err != nil {
			return err
		}
		slog.Info("Serving static files", "path", staticDir)
	}

	if cfg.Digest.Enabled() {
		sender, err := digest.NewTelegramSender(cfg.Digest.TelegramToken, cfg.Digest.ChatID)
		if err != nil {
			return err
		}
		scheduler := digest.NewScheduler(store, sender, cfg.Digest.Hour, cfg.Digest.CheckInterval)
		go scheduler.Run(ctx)
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(server.NewRouter(staticDir, services...), &http2.Server{}),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr)
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

	slog.Info("Shutting down", "timeout", cfg.Shutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
