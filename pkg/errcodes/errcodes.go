package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Kiosk session.
	NoSelection        failure.ErrorCode = "NoSelection"
	OutOfStock         failure.ErrorCode = "OutOfStock"
	InsufficientFunds  failure.ErrorCode = "InsufficientFunds"
	PurchaseInProgress failure.ErrorCode = "PurchaseInProgress"
	InvalidAmount      failure.ErrorCode = "InvalidAmount"
	ItemNotFound       failure.ErrorCode = "ItemNotFound"

	// Inventory service.
	CatalogLoadError failure.ErrorCode = "CatalogLoadError"
	PersistenceError failure.ErrorCode = "PersistenceError"
	InvalidItem      failure.ErrorCode = "InvalidItem"

	// Receipt journal.
	InvalidReceipt failure.ErrorCode = "InvalidReceipt"
)
