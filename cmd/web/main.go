package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach-web/internal/audit"
	"fitcoach-web/internal/config"
	"fitcoach-web/internal/fitapi"
	"fitcoach-web/internal/session"
	"fitcoach-web/internal/webapp"
	"fitcoach-web/pkg/logger"
	"fitcoach-web/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	api := fitapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	// Audit: Postgres when configured, in-memory otherwise.
	var auditRepo audit.Repository = audit.NewMemoryRepo()
	if cfg.AuditDBEnabled() {
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := audit.ApplyMigrations(db); err != nil {
			log.Error("audit migrations failed", "err", err)
			os.Exit(1)
		}
		auditRepo = audit.NewPostgresRepo(db)
	}
	auditSvc := audit.NewService(auditRepo)

	// Profile cache: optional.
	var cache session.ProfileCache
	if cfg.CacheEnabled() {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		cache = session.NewRedisCache(rdb, cfg.Redis.CacheTTL)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := webapp.Handlers{
		API:           api,
		Audit:         auditSvc,
		Cache:         cache,
		SecureCookies: cfg.SecureCookies(),
	}
	registerRoutes(r, h, auditSvc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("web listening", "addr", srv.Addr, "env", cfg.App.Env, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
