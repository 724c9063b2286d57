package kiosk

import (
	"errors"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/errcodes"
)

// shortfallError carries how much balance is missing for the selected item.
type shortfallError struct {
	*domain.AppError
	shortfall int64
}

func (e *shortfallError) Unwrap() error {
	return e.AppError
}

// Shortfall reports the missing amount when err is an InsufficientFunds rejection.
func Shortfall(err error) (int64, bool) {
	var sErr *shortfallError
	if errors.As(err, &sErr) {
		return sErr.shortfall, true
	}
	return 0, false
}

func guardNotification(err error) entity.Notification {
	code, _ := domain.GetCode(err)

	switch code {
	case errcodes.PurchaseInProgress:
		return entity.Notification{Kind: entity.NotificationPurchaseInProgress}
	case errcodes.OutOfStock:
		return entity.Notification{Kind: entity.NotificationOutOfStock}
	case errcodes.InsufficientFunds:
		shortfall, _ := Shortfall(err)
		return entity.Notification{Kind: entity.NotificationInsufficientFunds, Amount: shortfall}
	default:
		return entity.Notification{Kind: entity.NotificationNoSelection}
	}
}
