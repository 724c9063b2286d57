package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/patrickmn/go-cache"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/internal/infrastructure/journal"
	"vend_kiosk/pkg/logx"
)

const processedTTL = time.Hour

type ReceiptStore interface {
	Create(ctx context.Context, receipt entity.Receipt) (bool, error)
}

type SalesTally interface {
	Add(ctx context.Context, receipt entity.Receipt) error
}

// ReceiptRecorder stores queued receipts and counts them into the daily tally.
type ReceiptRecorder struct {
	store     ReceiptStore
	tally     SalesTally
	processed *cache.Cache
}

func NewReceiptRecorder(store ReceiptStore, tally SalesTally) *ReceiptRecorder {
	return &ReceiptRecorder{
		store:     store,
		tally:     tally,
		processed: cache.New(processedTTL, 2*processedTTL),
	}
}

// Handle processes a receipt:record task. Redelivered receipts are counted once.
func (w *ReceiptRecorder) Handle(ctx context.Context, task *asynq.Task) error {
	receipt, err := journal.ParseRecordReceiptTask(task)
	if err != nil {
		return fmt.Errorf("journal.ParseRecordReceiptTask: %w: %w", err, asynq.SkipRetry)
	}

	log := logger(ctx).With(slog.String(logx.FieldReceiptID, receipt.ID))

	if _, ok := w.processed.Get(receipt.ID); ok {
		log.Debug("receipt already recorded")
		return nil
	}

	created, err := w.store.Create(ctx, receipt)
	if err != nil {
		return fmt.Errorf("store.Create: %w", err)
	}

	// The stored row is the ledger; a retry would skip the tally anyway since
	// the row already exists.
	if created {
		if err = w.tally.Add(ctx, receipt); err != nil {
			log.Error("tally.Add", logx.Error(err))
		}
	}

	w.processed.Set(receipt.ID, struct{}{}, cache.DefaultExpiration)

	log.Info(
		"receipt recorded",
		slog.Int64(logx.FieldItemID, receipt.ItemID),
		slog.Int64(logx.FieldAmount, receipt.Price),
		slog.Bool("created", created),
	)

	return nil
}
