package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"vend_kiosk/internal/domain/entity"
)

const (
	callbackAdd    = "add"
	callbackSelect = "select"
	callbackBuy    = "buy"

	denominationsPerRow = 3
)

func addCallback(amount int64) string {
	return callbackAdd + ":" + strconv.FormatInt(amount, 10)
}

func selectCallback(id int64) string {
	return callbackSelect + ":" + strconv.FormatInt(id, 10)
}

// parseCallback splits "<action>:<number>" callback data. The argument is
// absent for plain actions such as "buy".
func parseCallback(data string) (action string, arg int64, err error) {
	action, raw, found := strings.Cut(data, ":")
	if !found {
		return action, 0, nil
	}

	arg, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("strconv.ParseInt(%q): %w", raw, err)
	}

	return action, arg, nil
}

func denominationKeyboard(denominations []int64) *telego.InlineKeyboardMarkup {
	var rows [][]telego.InlineKeyboardButton

	for start := 0; start < len(denominations); start += denominationsPerRow {
		end := min(start+denominationsPerRow, len(denominations))

		row := make([]telego.InlineKeyboardButton, 0, end-start)
		for _, amount := range denominations[start:end] {
			row = append(row, tu.InlineKeyboardButton(fmt.Sprintf("+%d", amount)).
				WithCallbackData(addCallback(amount)))
		}

		rows = append(rows, row)
	}

	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton("🛒 Buy").WithCallbackData(callbackBuy),
	))

	return tu.InlineKeyboard(rows...)
}

func catalogKeyboard(items []entity.Item) *telego.InlineKeyboardMarkup {
	rows := make([][]telego.InlineKeyboardButton, 0, len(items)+1)

	for _, item := range items {
		label := fmt.Sprintf("%s – %d", item.Name, item.Price)
		if !item.InStock() {
			label += " (sold out)"
		}

		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(label).WithCallbackData(selectCallback(item.ID)),
		))
	}

	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton("🛒 Buy").WithCallbackData(callbackBuy),
	))

	return tu.InlineKeyboard(rows...)
}
