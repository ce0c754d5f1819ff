package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"

	"daycare/internal/child"
	"daycare/internal/config"
	"daycare/internal/logging"
	"daycare/internal/mood"
	"daycare/internal/queue"
	"daycare/internal/store"
)

// Worker consumes mood.recorded events and copies each submitted mood onto
// the child's profile.
func main() {
	cfg, err := config.Load()
	if err != nil {
		level.Error(logging.New("worker", "info", "")).Log("msg", "config load failed", "err", err)
		os.Exit(1)
	}
	logger := logging.New("worker", cfg.LogLevel, cfg.LogFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		level.Info(logger).Log("msg", "shutdown signal received")
		cancel()
	}()

	if cfg.StoreBackend != "postgres" || cfg.QueueBackend != "redis" {
		level.Error(logger).Log("msg", "worker needs STORE_BACKEND=postgres and QUEUE_BACKEND=redis; memory backends sync inside the api process")
		os.Exit(1)
	}

	db, err := store.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		level.Error(logger).Log("msg", "db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	q := queue.NewRedisQueue(redisClient.Client, cfg.QueueKey)

	moods := mood.NewService(
		mood.NewPostgresRepository(db.Client),
		child.NewPostgresRepository(db.Client),
		nil,
		logger,
	)
	if err := moods.RunProfileSync(ctx, q); err != nil {
		level.Error(logger).Log("msg", "mood profile sync failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "worker stopped")
}
