package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"pedigree-registry/internal/adapters/auth/jwtauth"
	"pedigree-registry/internal/adapters/auth/odin"
	"pedigree-registry/internal/adapters/directory/httpdir"
	"pedigree-registry/internal/adapters/directory/memdir"
	pg "pedigree-registry/internal/adapters/storage/postgres"
	"pedigree-registry/internal/config"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/auth"
	"pedigree-registry/internal/ports/directory"
	"pedigree-registry/internal/router"
)

const shutdownTimeout = 10 * time.Second

// @title Pedigree Registry API
// @version 1.0
// @description Registro de pedigríes multi-tenant con links entre criaderos y cálculo de COI.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pedigree-registry: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := openRedis(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	dir, err := newDirectory(cfg.Directory)
	if err != nil {
		return err
	}

	app, err := router.New(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Redis:        rdb,
		Directory:    dir,
		Config:       cfg,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Sweeper.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth_mode": cfg.Auth.Mode, "postgres": db != nil, "redis": rdb != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDB(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*sql.DB, error) {
	if cfg.DSN == "" {
		log.Info("DATABASE DSN not set, using in-memory storage", nil)
		return nil, nil
	}
	db, err := pg.Open(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if cfg.Migrate {
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return db, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Info("redis not configured, using in-memory cache and log notifier", nil)
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	return rdb, nil
}

func newVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	switch cfg.Mode {
	case "jwt":
		return jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	case "odin":
		c, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
		if err != nil {
			return nil, err
		}
		return odin.NewVerifier(c), nil
	default:
		// modo dev: X-Debug-Tenant-ID
		return nil, nil
	}
}

func newDirectory(cfg config.DirectoryConfig) (directory.Directory, error) {
	if cfg.BaseURL == "" {
		return memdir.New(), nil
	}
	return httpdir.New(httpdir.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Timeout: cfg.Timeout})
}
