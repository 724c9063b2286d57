package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"vend_kiosk/internal/transport/bot/handler"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const longPollingTimeout = 60

// Bot drives the kiosk session from a single Telegram chat.
type Bot struct {
	bot     *telego.Bot
	handler *handler.Handler
	chatID  int64
}

func New(bot *telego.Bot, h *handler.Handler, chatID int64) *Bot {
	return &Bot{
		bot:     bot,
		handler: h,
		chatID:  chatID,
	}
}

// Run polls updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.chatID)

	go func() {
		<-ctx.Done()

		if err := botHandler.Stop(); err != nil {
			logger(ctx).Error("botHandler.Stop", logx.Error(err))
		}
	}()

	logger(ctx).Info("telegram bot started")

	if err = botHandler.Start(); err != nil {
		return fmt.Errorf("botHandler.Start: %w", err)
	}

	logger(ctx).Info("telegram bot stopped")

	return nil
}
