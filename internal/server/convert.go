package server

import (
	"strconv"
	"time"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/internal/infrastructure/sales"
	"vend_kiosk/pkg/lox"
	"vend_kiosk/pkg/rest"
)

func newRESTItem(item entity.Item) rest.Item {
	return rest.Item{
		ID:      item.ID,
		Image:   item.Image,
		Name:    item.Name,
		Price:   item.Price,
		Stock:   item.Stock,
		InStock: item.InStock(),
	}
}

func newRESTKioskState(snapshot entity.Snapshot, denominations []int64) rest.KioskState {
	state := rest.KioskState{
		Catalog:          lox.Map(snapshot.Catalog, newRESTItem),
		Balance:          snapshot.Balance,
		PurchaseInFlight: snapshot.PurchaseInFlight,
		Denominations:    denominations,
	}

	if snapshot.Selected != nil {
		selected := newRESTItem(*snapshot.Selected)
		state.Selected = &selected
	}

	return state
}

func newRESTReceipt(receipt entity.Receipt) rest.Receipt {
	return rest.Receipt{
		ID:          receipt.ID,
		ItemID:      receipt.ItemID,
		ItemName:    receipt.ItemName,
		Price:       receipt.Price,
		Paid:        receipt.Paid,
		Change:      receipt.Change,
		PurchasedAt: receipt.PurchasedAt.UTC().Format(time.RFC3339),
	}
}

func newRESTSalesDay(day sales.Day) rest.SalesDay {
	items := make(map[string]int64, len(day.Items))
	for id, count := range day.Items {
		items[strconv.FormatInt(id, 10)] = count
	}

	return rest.SalesDay{
		Date:    day.Date,
		Revenue: day.Revenue,
		Items:   items,
	}
}
