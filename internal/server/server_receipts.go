package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/internal/infrastructure/sales"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/httpx/reply"
	"vend_kiosk/pkg/httpx/req"
	"vend_kiosk/pkg/lox"
	"vend_kiosk/pkg/rest"
)

const (
	defaultReceiptsLimit = 20
	maxReceiptsLimit     = 100
)

type receiptLister interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Receipt, error)
}

type salesReader interface {
	Day(ctx context.Context, date string) (sales.Day, error)
}

type ReceiptServer struct {
	receipts receiptLister
	sales    salesReader
}

func NewReceiptServer(receipts receiptLister, sales salesReader) *ReceiptServer {
	return &ReceiptServer{
		receipts: receipts,
		sales:    sales,
	}
}

func (s ReceiptServer) getV1Receipts(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, err := req.QueryInt(r, "limit", defaultReceiptsLimit)
	if err != nil {
		return fmt.Errorf("req.QueryInt: %w", err)
	}

	receipts, err := s.receipts.ListRecent(ctx, min(limit, maxReceiptsLimit))
	if err != nil {
		return fmt.Errorf("receipts.ListRecent: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ReceiptList{Receipts: lox.Map(receipts, newRESTReceipt)})

	return nil
}

func (s ReceiptServer) getV1SalesDay(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	date := chi.URLParam(r, "date")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid date %q", date),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("date must be YYYY-MM-DD"),
		)
	}

	day, err := s.sales.Day(ctx, date)
	if err != nil {
		return fmt.Errorf("sales.Day: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSalesDay(day))

	return nil
}
