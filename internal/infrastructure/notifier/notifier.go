package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Target receives kiosk notifications.
type Target interface {
	Notify(ctx context.Context, n entity.Notification) error
}

// Log writes every notification to the context logger.
type Log struct{}

func NewLog() Log {
	return Log{}
}

func (Log) Notify(ctx context.Context, n entity.Notification) error {
	logger(ctx).Info(
		n.Message(),
		slog.String(logx.FieldNotification, string(n.Kind)),
		slog.Int64(logx.FieldAmount, n.Amount),
	)

	return nil
}

// Multi delivers a notification to every target, even when some fail.
type Multi struct {
	targets []Target
}

func NewMulti(targets ...Target) Multi {
	return Multi{targets: targets}
}

func (m Multi) Notify(ctx context.Context, n entity.Notification) error {
	errs := make([]error, 0, len(m.targets))

	for i, target := range m.targets {
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
