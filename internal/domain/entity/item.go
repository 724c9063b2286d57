package entity

// Item is a snapshot of one purchasable product as reported by the
// inventory service.
type Item struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

func (i Item) InStock() bool {
	return i.Stock > 0
}

// WithStock returns a copy of the item with its stock replaced.
func (i Item) WithStock(stock int) Item {
	i.Stock = stock
	return i
}

// Snapshot is a consistent read of the kiosk session.
type Snapshot struct {
	Catalog          []Item
	Balance          int64
	Selected         *Item
	PurchaseInFlight bool
}
