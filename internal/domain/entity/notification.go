package entity

import "fmt"

type NotificationKind string

const (
	NotificationBalanceAdded       NotificationKind = "balance_added"
	NotificationPurchaseSucceeded  NotificationKind = "purchase_succeeded"
	NotificationChangeReturned     NotificationKind = "change_returned"
	NotificationPurchaseFailed     NotificationKind = "purchase_failed"
	NotificationNoSelection        NotificationKind = "no_selection"
	NotificationOutOfStock         NotificationKind = "out_of_stock"
	NotificationInsufficientFunds  NotificationKind = "insufficient_funds"
	NotificationPurchaseInProgress NotificationKind = "purchase_in_progress"
	NotificationCatalogLoadFailed  NotificationKind = "catalog_load_failed"
	NotificationInvalidAmount      NotificationKind = "invalid_amount"
)

// Notification is a user-facing acknowledgement emitted by the kiosk.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Amount   int64            `json:"amount,omitempty"`
	ItemName string           `json:"item_name,omitempty"`
}

func (n Notification) Message() string {
	switch n.Kind {
	case NotificationBalanceAdded:
		return fmt.Sprintf("Received %d", n.Amount)
	case NotificationPurchaseSucceeded:
		if n.ItemName != "" {
			return fmt.Sprintf("Purchase successful: %s", n.ItemName)
		}
		return "Purchase successful"
	case NotificationChangeReturned:
		return fmt.Sprintf("Your change: %d", n.Amount)
	case NotificationPurchaseFailed:
		return "Purchase failed, your balance was restored"
	case NotificationNoSelection:
		return "Select an item first"
	case NotificationOutOfStock:
		return "Out of stock"
	case NotificationInsufficientFunds:
		if n.Amount > 0 {
			return fmt.Sprintf("Insufficient funds, %d more needed", n.Amount)
		}
		return "Insufficient funds"
	case NotificationPurchaseInProgress:
		return "Another purchase is in progress"
	case NotificationCatalogLoadFailed:
		return "Could not load the catalog"
	case NotificationInvalidAmount:
		return fmt.Sprintf("Invalid amount: %d", n.Amount)
	default:
		return string(n.Kind)
	}
}
