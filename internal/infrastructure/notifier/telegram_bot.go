package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"vend_kiosk/internal/domain/entity"
)

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(bot *telego.Bot, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}
}

// Notify sends the notification text to the kiosk chat.
func (b *TelegramBot) Notify(ctx context.Context, n entity.Notification) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		emoji(n.Kind)+" "+n.Message(),
	)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}

func emoji(kind entity.NotificationKind) string {
	switch kind {
	case entity.NotificationBalanceAdded:
		return "💵"
	case entity.NotificationPurchaseSucceeded:
		return "✅"
	case entity.NotificationChangeReturned:
		return "🪙"
	case entity.NotificationCatalogLoadFailed, entity.NotificationPurchaseFailed:
		return "⚠️"
	default:
		return "❌"
	}
}
