package persistence

import (
	"time"

	"vend_kiosk/internal/domain/entity"
)

type receiptSchema struct {
	ID          string    `db:"id"`
	ItemID      int64     `db:"item_id"`
	ItemName    string    `db:"item_name"`
	Price       int64     `db:"price"`
	Paid        int64     `db:"paid"`
	Change      int64     `db:"change"`
	PurchasedAt time.Time `db:"purchased_at"`
}

func fromReceipt(e entity.Receipt) receiptSchema {
	return receiptSchema{
		ID:          e.ID,
		ItemID:      e.ItemID,
		ItemName:    e.ItemName,
		Price:       e.Price,
		Paid:        e.Paid,
		Change:      e.Change,
		PurchasedAt: e.PurchasedAt.UTC(),
	}
}

func (s receiptSchema) toDomain() entity.Receipt {
	return entity.Receipt{
		ID:          s.ID,
		ItemID:      s.ItemID,
		ItemName:    s.ItemName,
		Price:       s.Price,
		Paid:        s.Paid,
		Change:      s.Change,
		PurchasedAt: s.PurchasedAt,
	}
}
