package handler

import (
	"context"
	"log/slog"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type kioskController interface {
	LoadCatalog(ctx context.Context) error
	AddBalance(ctx context.Context, amount int64) error
	SelectByID(ctx context.Context, id int64) (entity.Item, error)
	Purchase(ctx context.Context) (entity.Receipt, error)
	State(ctx context.Context) entity.Snapshot
}

// Handler renders the kiosk session in a Telegram chat. Purchase and balance
// outcomes reach the chat through the notifier, not through handler replies.
type Handler struct {
	kiosk         kioskController
	denominations []int64
}

func New(kiosk kioskController, denominations []int64) *Handler {
	return &Handler{
		kiosk:         kiosk,
		denominations: denominations,
	}
}

// requestContext tags ctx with the chat driving the update.
func requestContext(ctx context.Context, chatID int64) context.Context {
	ctx = contextx.WithChatID(ctx, contextx.ChatID(chatID))

	return contextx.WithLogger(ctx, logger(ctx).With(
		slog.Int64(logx.FieldChatID, chatID),
		logx.Stringer(logx.FieldTraceID, contextx.NewTraceID()),
	))
}
