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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"fbauth/internal/auth"
	"fbauth/internal/auth/facebook"
	"fbauth/internal/config"
	"fbauth/internal/handler"
	"fbauth/internal/logger"
	"fbauth/internal/metrics"
	"fbauth/internal/port"
	"fbauth/internal/repository/postgres"
	"fbauth/internal/router"
	"fbauth/internal/service"
	"fbauth/internal/session/memory"
	redisstore "fbauth/internal/session/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	authMetrics := metrics.NewAuthMetrics(reg)

	healthDeps := map[string]handler.Pinger{}

	// Initialize session storage
	var sessions port.SessionStore
	switch cfg.Session.Driver {
	case "redis":
		store := redisstore.New(cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB, cfg.Session.RedisPrefix, cfg.Session.TTL)
		defer func() { _ = store.Close() }()
		healthDeps["redis"] = store
		sessions = store
	default:
		sessions = memory.New(cfg.Session.TTL)
	}

	// Initialize repositories
	providerCfg := facebook.Config{
		ProviderKey:       cfg.Facebook.ProviderKey,
		CreateIfNotExists: cfg.Facebook.CreateIfNotExists,
	}
	var userRepo port.UserRepository
	if cfg.Facebook.UseUserProvider {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		healthDeps["database"] = db

		userRepo = postgres.NewUserRepo(db, cfg.Facebook.DefaultRoles)
		providerCfg.UserProvider = userRepo
		providerCfg.UserChecker = auth.NewUserChecker()
	}

	// Initialize services
	clients := facebook.NewGraphClientFactory(cfg.Facebook.AppID, cfg.Facebook.AppSecret, facebook.GraphOptions{
		Version:        cfg.Facebook.GraphVersion,
		HTTPClient:     &http.Client{Timeout: cfg.Facebook.Timeout},
		AppsecretProof: cfg.Facebook.AppsecretProof,
	})
	tokenSvc := service.NewTokenService(cfg.JWT)
	facebookAuthSvc, err := service.NewFacebookAuthService(clients, sessions, userRepo, providerCfg, tokenSvc, authMetrics, zl)
	if err != nil {
		return fmt.Errorf("failed to configure facebook authentication: %w", err)
	}

	// Initialize handlers
	authH := handler.NewAuthHandler(facebookAuthSvc, cfg.Session, zl)
	healthH := handler.NewHealthHandler(healthDeps)
	var userH *handler.UserHandler
	if userRepo != nil {
		userH = handler.NewUserHandler(service.NewUserService(userRepo), zl)
	}

	// Setup router
	r := router.Setup(zl, reg, cfg.CORS.AllowedOrigins, tokenSvc, authH, userH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-stop:
		zl.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
	}

	return nil
}
