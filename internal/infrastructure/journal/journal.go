// Package journal hands committed receipts to the background recorder.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Config struct {
	Queue     string
	MaxRetry  int
	Retention time.Duration
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue enqueues one receipt:record task per receipt. The receipt id doubles
// as the task id so a receipt is never queued twice.
type Queue struct {
	client enqueuer
	cfg    Config
}

func NewQueue(client enqueuer, cfg Config) *Queue {
	return &Queue{
		client: client,
		cfg:    cfg,
	}
}

func (q *Queue) Record(ctx context.Context, receipt entity.Receipt) error {
	task, err := NewRecordReceiptTask(receipt)
	if err != nil {
		return fmt.Errorf("NewRecordReceiptTask: %w", err)
	}

	info, err := q.client.EnqueueContext(ctx, task, q.options(receipt)...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		logger(ctx).Warn("receipt already queued", slog.String(logx.FieldReceiptID, receipt.ID))
		return nil
	}

	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Debug(
		"receipt queued",
		slog.String(logx.FieldReceiptID, receipt.ID),
		slog.String("queue", info.Queue),
	)

	return nil
}

func (q *Queue) options(receipt entity.Receipt) []asynq.Option {
	opts := []asynq.Option{asynq.TaskID(receipt.ID)}

	if q.cfg.Queue != "" {
		opts = append(opts, asynq.Queue(q.cfg.Queue))
	}

	if q.cfg.MaxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(q.cfg.MaxRetry))
	}

	if q.cfg.Retention > 0 {
		opts = append(opts, asynq.Retention(q.cfg.Retention))
	}

	return opts
}

// Nop drops receipts. It is used when the journal is disabled.
type Nop struct{}

func (Nop) Record(context.Context, entity.Receipt) error {
	return nil
}
