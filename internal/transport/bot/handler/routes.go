package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"vend_kiosk/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, chatID int64) {
	messages := bh.Group(th.AnyMessage())
	messages.Use(middleware.ChatOnly(chatID))

	messages.HandleMessage(h.OnStart, th.CommandEqual("start"))
	messages.HandleMessage(h.OnCatalog, th.CommandEqual("catalog"))
	messages.HandleMessage(h.OnBalance, th.CommandEqual("balance"))
	messages.HandleMessage(h.OnBuy, th.CommandEqual("buy"))
	messages.HandleMessage(h.OnRefresh, th.CommandEqual("refresh"))

	callbacks := bh.Group(th.AnyCallbackQuery())
	callbacks.Use(middleware.ChatOnly(chatID))

	callbacks.HandleCallbackQuery(h.OnCallback, th.AnyCallbackQuery())
}
