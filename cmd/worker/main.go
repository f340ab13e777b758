package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mayron603/painel-ssp/internal/config"
	"github.com/Mayron603/painel-ssp/internal/db"
	"github.com/Mayron603/painel-ssp/internal/logging"
	"github.com/Mayron603/painel-ssp/internal/store"
	"github.com/Mayron603/painel-ssp/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting_worker", "service", "painel-ssp-worker", "interval", cfg.AlertInterval.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// conectar ao postgres com retry
	var dbConn *db.DB
	for i := 0; i < 5; i++ {
		dbConn, err = db.New(ctx, cfg.DBDSN)
		if err == nil {
			break
		}
		logger.Warn("db_connect_retry", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Error("db_connect_failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.Bootstrap(ctx); err != nil {
		logger.Error("db_bootstrap_failed", "error", err)
		os.Exit(1)
	}

	w := worker.NewAlertWorker(logger, store.New(dbConn), cfg.AlertInterval)

	go func() {
		stop := make(chan os.Signal, 2)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting_down")
		cancel()
	}()

	w.Run(ctx)

	dbConn.Close()
	logger.Info("worker_stopped")
}
