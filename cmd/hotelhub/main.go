package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/hotelhub/internal/adapter/driven/hotelapi"
	sqliteadapter "github.com/ericfisherdev/hotelhub/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/hotelhub/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/hotelhub/internal/adapter/driving/web"
	"github.com/ericfisherdev/hotelhub/internal/application"
	"github.com/ericfisherdev/hotelhub/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"backend_url", cfg.BackendURL,
		"session_ttl", cfg.SessionTTL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", db.Path())

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db, slog.Default()); err != nil {
		return err
	}

	// 5. Resolve the session key. Without a configured key sessions do not
	// survive a restart.
	key := cfg.SecretKey
	if !cfg.HasSecretKey() {
		key, err = ephemeralKey()
		if err != nil {
			return err
		}
		slog.Warn("HOTELHUB_SECRET_KEY not set, using an ephemeral session key; sessions end on restart")
	}

	// 6. Wire adapters.
	sessionStore, err := sqliteadapter.NewSessionRepo(db, key)
	if err != nil {
		return err
	}

	backend, err := hotelapi.NewClient(cfg.BackendURL, cfg.BackendTimeout, cfg.AuthScheme)
	if err != nil {
		return err
	}

	// 7. Create services and start the session sweeper.
	sessionSvc := application.NewSessionService(sessionStore, backend, hotelapi.JWTDecoder{}, cfg.SessionTTL, slog.Default())
	userSvc := application.NewUserService(backend, slog.Default())

	sweepSvc := application.NewSweepService(sessionStore, cfg.SessionSweepInterval, slog.Default())
	go sweepSvc.Start(ctx)

	// 8. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(db, slog.Default()))

	webHandler := webhandler.NewHandler(sessionSvc, userSvc, cfg.RegisterURL, cfg.SecureCookies, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("hotelhub started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func ephemeralKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	return key, nil
}
