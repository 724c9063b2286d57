package handler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/transport/bot/view"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/logx"
)

func (h *Handler) OnCallback(ctx *th.Context, query telego.CallbackQuery) error {
	var chatID int64
	if query.Message != nil {
		chatID = query.Message.GetChat().ID
	}

	reqCtx := requestContext(ctx, chatID)
	answer := tu.CallbackQuery(query.ID)

	action, arg, err := parseCallback(query.Data)
	if err != nil {
		logger(reqCtx).Warn("parseCallback", slog.String("data", query.Data), logx.Error(err))
		action = ""
	}

	switch action {
	case callbackAdd:
		// The notifier acknowledges accepted amounts and the ones the kiosk rejects.
		if err = h.addBalance(reqCtx, arg); err != nil {
			logger(reqCtx).Info("addBalance", logx.Error(err))

			if domain.HasCode(err, errcodes.InvalidAmount) {
				answer = answer.WithText(view.UnknownDenomination).WithShowAlert()
			}
		}
	case callbackSelect:
		item, err := h.kiosk.SelectByID(reqCtx, arg)
		if err != nil {
			answer = answer.WithText(view.ItemUnavailable).WithShowAlert()
			break
		}

		answer = answer.WithText(view.Selected(item))
	case callbackBuy:
		if _, err = h.kiosk.Purchase(reqCtx); err != nil {
			logger(reqCtx).Info("kiosk.Purchase", logx.Error(err))
		}
	default:
		answer = answer.WithText(view.UnknownAction)
	}

	if err = ctx.Bot().AnswerCallbackQuery(ctx, answer); err != nil {
		logger(reqCtx).Error("bot.AnswerCallbackQuery", logx.Error(err))
	}

	return nil
}

// addBalance credits amount when it is one of the kiosk's denominations.
// Callback data comes from the client and is not trusted.
func (h *Handler) addBalance(ctx context.Context, amount int64) error {
	if !slices.Contains(h.denominations, amount) {
		return domain.NewError(errcodes.InvalidAmount, fmt.Sprintf("%d is not an accepted denomination", amount))
	}

	if err := h.kiosk.AddBalance(ctx, amount); err != nil {
		return fmt.Errorf("kiosk.AddBalance: %w", err)
	}

	return nil
}
