package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"plantstore_backend/internal/cart"
	cartrepo "plantstore_backend/internal/cart/repository"
	"plantstore_backend/internal/scheduler"
	"plantstore_backend/platform/config"
	"plantstore_backend/platform/logger"
	"plantstore_backend/platform/validator"
)

// The scheduler binary runs the asynq worker that expires abandoned carts.
// It shares the cart module's service so sweeps apply the same locking and
// snapshot rules as the HTTP path.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := cartrepo.NewClient(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer redisClient.Close()

	sweepClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize sweep client", "error", err)
		panic("failed to initialize sweep client: " + err.Error())
	}
	defer sweepClient.Close()

	// The worker only reads and deletes snapshots, so the cart module runs
	// without a tier source here.
	cartModule := cart.NewModule(
		redisClient,
		nil,
		sweepClient,
		cfg.GetCartSnapshotTTL(),
		cfg.GetCartAbandonTTL(),
		validator.New(),
		log,
	)

	worker, err := scheduler.NewWorker(cfg, cartModule.Service(), sweepClient, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("scheduler worker running", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}
