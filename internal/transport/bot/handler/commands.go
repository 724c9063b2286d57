package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"vend_kiosk/internal/transport/bot/view"
	"vend_kiosk/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        view.StartMessage,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: denominationKeyboard(h.denominations),
	})
}

func (h *Handler) OnCatalog(ctx *th.Context, msg telego.Message) error {
	reqCtx := requestContext(ctx, msg.Chat.ID)
	items := h.kiosk.State(reqCtx).Catalog

	return h.send(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        view.Catalog(items),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: catalogKeyboard(items),
	})
}

func (h *Handler) OnBalance(ctx *th.Context, msg telego.Message) error {
	reqCtx := requestContext(ctx, msg.Chat.ID)

	return h.send(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        view.Balance(h.kiosk.State(reqCtx)),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: denominationKeyboard(h.denominations),
	})
}

func (h *Handler) OnBuy(ctx *th.Context, msg telego.Message) error {
	reqCtx := requestContext(ctx, msg.Chat.ID)

	// Rejections are already reported to the chat by the notifier.
	if _, err := h.kiosk.Purchase(reqCtx); err != nil {
		logger(reqCtx).Info("kiosk.Purchase", logx.Error(err))
	}

	return nil
}

func (h *Handler) OnRefresh(ctx *th.Context, msg telego.Message) error {
	reqCtx := requestContext(ctx, msg.Chat.ID)

	if err := h.kiosk.LoadCatalog(reqCtx); err != nil {
		logger(reqCtx).Info("kiosk.LoadCatalog", logx.Error(err))
		return nil
	}

	return h.send(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: msg.Chat.ID},
		Text:   fmt.Sprintf(view.CatalogRefreshed, len(h.kiosk.State(reqCtx).Catalog)),
	})
}

func (h *Handler) send(ctx *th.Context, params *telego.SendMessageParams) error {
	if _, err := ctx.Bot().SendMessage(ctx, params); err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
