package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/lox"
)

const receiptColumns = `id, item_id, item_name, price, paid, change, purchased_at`

type ReceiptRepository struct {
	db *sqlx.DB
}

func NewReceiptRepository(db *sqlx.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create stores the receipt. A receipt with the same id is left untouched and
// reported with created == false.
func (r *ReceiptRepository) Create(ctx context.Context, receipt entity.Receipt) (bool, error) {
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES (:id, :item_id, :item_name, :price, :paid, :change, :purchased_at)
		ON CONFLICT (id) DO NOTHING`

	res, err := r.db.NamedExecContext(ctx, query, fromReceipt(receipt))
	if err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to insert receipt")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return rows > 0, nil
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`

	var schema receiptSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Receipt{}, domain.NewError(errcodes.NotFound, "receipt not found")
		}
		return entity.Receipt{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get receipt")
	}

	return schema.toDomain(), nil
}

// ListRecent returns up to limit receipts, newest first.
func (r *ReceiptRepository) ListRecent(ctx context.Context, limit int) ([]entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		ORDER BY purchased_at DESC, id DESC
		LIMIT $1`

	var schemas []receiptSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list receipts")
	}

	return lox.Map(schemas, receiptSchema.toDomain), nil
}
