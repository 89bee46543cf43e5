package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	cartservice "plantstore_backend/internal/cart/service"
	"plantstore_backend/platform/config"
	"plantstore_backend/platform/logger"
)

// Worker consumes scheduler tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	carts  *cartservice.Service
	client *Client
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, carts *cartservice.Service, client *Client, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		carts:  carts,
		client: client,
		log:    log,
	}

	mux.HandleFunc(TaskCartSweep, w.handleCartSweep)

	return w, nil
}

// handleCartSweep expires the member's cart when idle past the abandon TTL,
// otherwise reschedules the sweep for the next expiry time.
func (w *Worker) handleCartSweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCartSweepPayload(task)
	if err != nil {
		return err
	}

	memberID, err := uuid.Parse(payload.MemberID)
	if err != nil {
		return err
	}

	next, err := w.carts.ExpireIfAbandoned(ctx, memberID)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	if err := w.client.ScheduleSweep(ctx, memberID, *next); err != nil {
		w.log.Warn("reschedule cart sweep failed", "memberId", memberID, "error", err)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
