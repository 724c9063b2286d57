package journal

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary          //nolint:gochecknoglobals
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals
)

const TypeRecordReceipt = "receipt:record"

type receiptPayload struct {
	ID          string    `json:"id"           validate:"required"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Price       int64     `json:"price"        validate:"gte=0"`
	Paid        int64     `json:"paid"         validate:"gtefield=Price"`
	Change      int64     `json:"change"       validate:"gte=0"`
	PurchasedAt time.Time `json:"purchased_at" validate:"required"`
}

func NewRecordReceiptTask(receipt entity.Receipt) (*asynq.Task, error) {
	payload, err := json.Marshal(receiptPayload(receipt))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(TypeRecordReceipt, payload), nil
}

// ParseRecordReceiptTask decodes and validates a receipt:record payload.
func ParseRecordReceiptTask(task *asynq.Task) (entity.Receipt, error) {
	var p receiptPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return entity.Receipt{}, domain.WrapError(err, errcodes.InvalidReceipt, "malformed receipt payload")
	}

	if err := validate.Struct(p); err != nil {
		return entity.Receipt{}, domain.WrapError(err, errcodes.InvalidReceipt, "invalid receipt payload")
	}

	return entity.Receipt(p), nil
}
