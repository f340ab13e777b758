package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mayron603/painel-ssp/internal/api"
	"github.com/Mayron603/painel-ssp/internal/config"
	"github.com/Mayron603/painel-ssp/internal/db"
	"github.com/Mayron603/painel-ssp/internal/logging"
	"github.com/Mayron603/painel-ssp/internal/redis"
	"github.com/Mayron603/painel-ssp/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting_api", "service", "painel-ssp-api", "http_addr", cfg.HTTPAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbConn, err := db.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("db_connect_failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.Bootstrap(ctx); err != nil {
		logger.Error("db_bootstrap_failed", "error", err)
		os.Exit(1)
	}

	// redis é opcional; sem ele o rate limit cai para o limiter em processo
	var redisClient *redis.Client
	if cfg.RedisDSN != "" {
		redisClient, err = redis.New(cfg.RedisDSN)
		if err != nil {
			logger.Error("redis_connect_failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	var archiver storage.Archiver = storage.NoopArchiver{}
	if cfg.R2Endpoint != "" && cfg.R2Bucket != "" && cfg.R2KeysRaw != "" {
		var r2Keys map[string]string
		if err := json.Unmarshal([]byte(cfg.R2KeysRaw), &r2Keys); err == nil {
			s3Client, err := storage.NewS3Client(storage.S3Config{
				Endpoint:        cfg.R2Endpoint,
				AccessKeyID:     r2Keys["access_key_id"],
				SecretAccessKey: r2Keys["secret_access_key"],
				Bucket:          cfg.R2Bucket,
				PublicURL:       r2Keys["public_url"],
				Region:          "auto",
			})
			if err != nil {
				logger.Warn("r2_init_failed", "error", err)
			} else {
				archiver = s3Client
				logger.Info("report_archive_enabled", "endpoint", cfg.R2Endpoint)
			}
		}
	}

	srv := api.NewServer(logger, dbConn, redisClient, archiver, cfg)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_listen_failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("api_started", "addr", cfg.HTTPAddr)

	// graceful shutdown
	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	} else {
		logger.Info("http_server_stopped")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis_close_error", "error", err)
		}
	}

	dbConn.Close()
	logger.Info("api_stopped")
}
