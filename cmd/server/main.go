package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"org-membership-backend/internal/access"
	"org-membership-backend/internal/config"
	"org-membership-backend/internal/db"
	identityrepo "org-membership-backend/internal/identity/repository"
	identityservice "org-membership-backend/internal/identity/service"
	"org-membership-backend/internal/logging"
	membershiprepo "org-membership-backend/internal/membership/repository"
	organizationrepo "org-membership-backend/internal/organization/repository"
	"org-membership-backend/internal/security"
	"org-membership-backend/internal/server"
	"org-membership-backend/internal/telemetry/otel"
	userrepo "org-membership-backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "org-membership-backend", cfg.OTLPInsecure)
	if err != nil {
		logger.WithError(err).Fatal("telemetry setup failed")
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	defer conn.Close()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.AccessTTL())

	users := userrepo.NewPostgresRepository(conn)
	orgs := organizationrepo.NewPostgresStore(conn)
	memberships := membershiprepo.NewPostgresRepository(conn)

	authService := identityservice.NewAuthService(identityrepo.NewPostgresStore(conn), hasher, tokens)
	accessService := access.NewService(users, orgs, memberships)

	handler := server.NewHandler(server.Deps{
		Auth:         authService,
		Access:       accessService,
		Tokens:       tokens,
		HealthPinger: conn,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("serve failed")
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
	logger.Info("http server stopped")
}
