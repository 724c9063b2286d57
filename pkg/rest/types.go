package rest

type Item struct {
	ID      int64  `json:"id"`
	Image   string `json:"image"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"inStock"`
}

type KioskState struct {
	Catalog          []Item  `json:"catalog"`
	Balance          int64   `json:"balance"`
	Selected         *Item   `json:"selected,omitempty"`
	PurchaseInFlight bool    `json:"purchaseInFlight"`
	Denominations    []int64 `json:"denominations"`
}

type AddBalanceRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type Balance struct {
	Balance int64 `json:"balance"`
}

type SelectItemRequest struct {
	ItemID *int64 `json:"itemId" validate:"required"`
}

type Receipt struct {
	ID          string `json:"id"`
	ItemID      int64  `json:"itemId"`
	ItemName    string `json:"itemName"`
	Price       int64  `json:"price"`
	Paid        int64  `json:"paid"`
	Change      int64  `json:"change"`
	PurchasedAt string `json:"purchasedAt"`
}

type ReceiptList struct {
	Receipts []Receipt `json:"receipts"`
}

type SalesDay struct {
	Date    string           `json:"date"`
	Revenue int64            `json:"revenue"`
	Items   map[string]int64 `json:"items"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
