package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/httpx/reply"
	"vend_kiosk/pkg/httpx/req"
	"vend_kiosk/pkg/rest"
)

type kioskController interface {
	LoadCatalog(ctx context.Context) error
	AddBalance(ctx context.Context, amount int64) error
	SelectByID(ctx context.Context, id int64) (entity.Item, error)
	Purchase(ctx context.Context) (entity.Receipt, error)
	State(ctx context.Context) entity.Snapshot
}

type KioskServer struct {
	kiosk         kioskController
	denominations []int64
}

func NewKioskServer(kiosk kioskController, denominations []int64) KioskServer {
	return KioskServer{
		kiosk:         kiosk,
		denominations: denominations,
	}
}

func (s KioskServer) getV1Kiosk(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, newRESTKioskState(s.kiosk.State(ctx), s.denominations))

	return nil
}

func (s KioskServer) postV1CatalogRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.kiosk.LoadCatalog(ctx); err != nil {
		return fmt.Errorf("kiosk.LoadCatalog: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTKioskState(s.kiosk.State(ctx), s.denominations))

	return nil
}

func (s KioskServer) postV1Balance(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AddBalanceRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if !slices.Contains(s.denominations, request.Amount) {
		return domain.NewError(errcodes.InvalidAmount, fmt.Sprintf("%d is not an accepted denomination", request.Amount))
	}

	if err := s.kiosk.AddBalance(ctx, request.Amount); err != nil {
		return fmt.Errorf("kiosk.AddBalance: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Balance{Balance: s.kiosk.State(ctx).Balance})

	return nil
}

func (s KioskServer) putV1Selection(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SelectItemRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	item, err := s.kiosk.SelectByID(ctx, *request.ItemID)
	if err != nil {
		return fmt.Errorf("kiosk.SelectByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItem(item))

	return nil
}

func (s KioskServer) postV1Purchase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	receipt, err := s.kiosk.Purchase(ctx)
	if err != nil {
		return fmt.Errorf("kiosk.Purchase: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTReceipt(receipt))

	return nil
}
