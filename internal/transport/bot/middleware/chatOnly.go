package middleware

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ChatOnly drops updates that do not come from the kiosk chat.
func ChatOnly(chatID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		got, ok := UpdateChatID(update)
		if !ok {
			return nil
		}

		if got == chatID {
			return ctx.Next(update)
		}

		logger(ctx).Warn("update from foreign chat ignored", slog.Int64(logx.FieldChatID, got))

		return nil
	}
}

// UpdateChatID returns the chat an update belongs to.
func UpdateChatID(update telego.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.GetChat().ID, true
	default:
		return 0, false
	}
}
