package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"game-scheduler/core/constants"
	"game-scheduler/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer is what services need to hand work to the worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) (string, error)
}

type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling %s payload: %w", taskType, err)
	}

	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data),
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		logger.Error("Queue:Enqueue", err, "task_type", taskType)
		return "", err
	}

	logger.Info("Queue:Enqueue", "task_type", taskType, "task_id", info.ID)
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Worker runs asynq handlers registered on its mux.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisAddr, redisPassword string, redisDB, concurrency int) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{constants.QueueDefault: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Queue:Worker", err, "task_type", task.Type())
			}),
		},
	)
	return &Worker{server: srv, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(taskType string, handler asynq.Handler) {
	w.mux.Handle(taskType, handler)
}

// Start begins processing in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
