package server

// Server groups the HTTP handlers. ReceiptServer is nil when the receipt
// journal is disabled.
type Server struct {
	KioskServer
	receipts *ReceiptServer
}

func NewServer(
	kioskServer KioskServer,
	receiptServer *ReceiptServer,
) Server {
	return Server{
		KioskServer: kioskServer,
		receipts:    receiptServer,
	}
}
