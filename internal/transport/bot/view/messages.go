package view

import (
	"fmt"
	"html"
	"strings"

	"vend_kiosk/internal/domain/entity"
)

const (
	StartMessage = `🥤 <b>Vending kiosk</b>

Insert money with the buttons below, pick an item from /catalog and press <b>Buy</b>.

/catalog – items on sale
/balance – current balance and selection
/buy – buy the selected item
/refresh – reload the catalog`

	CatalogEmpty      = "The catalog is empty."
	CatalogRefreshed  = "Catalog reloaded: %d items."
	CatalogLoadFailed = "⚠️ Could not reach the inventory service."
	ItemUnavailable   = "This item is no longer offered."
	UnknownAction     = "Unknown action."

	UnknownDenomination = "This amount is not accepted."
)

func Catalog(items []entity.Item) string {
	if len(items) == 0 {
		return CatalogEmpty
	}

	var sb strings.Builder
	sb.WriteString("📦 <b>Catalog</b>\n\n")

	for _, item := range items {
		stock := fmt.Sprintf("%d left", item.Stock)
		if !item.InStock() {
			stock = "sold out"
		}

		fmt.Fprintf(&sb, "• <b>%s</b> – %d (%s)\n", html.EscapeString(item.Name), item.Price, stock)
	}

	return sb.String()
}

func Balance(snapshot entity.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "💰 <b>Balance:</b> %d\n", snapshot.Balance)

	if snapshot.Selected != nil {
		fmt.Fprintf(&sb, "🛒 <b>Selected:</b> %s – %d\n", html.EscapeString(snapshot.Selected.Name), snapshot.Selected.Price)
	} else {
		sb.WriteString("🛒 Nothing selected\n")
	}

	if snapshot.PurchaseInFlight {
		sb.WriteString("⏳ Purchase in progress\n")
	}

	return sb.String()
}

func Selected(item entity.Item) string {
	return fmt.Sprintf("Selected: %s", item.Name)
}
