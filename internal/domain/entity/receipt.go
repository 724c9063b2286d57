package entity

import "time"

// Receipt records a committed purchase.
type Receipt struct {
	ID          string    `json:"id"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Price       int64     `json:"price"`
	Paid        int64     `json:"paid"`
	Change      int64     `json:"change"`
	PurchasedAt time.Time `json:"purchased_at"`
}
