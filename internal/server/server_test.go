package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/internal/domain/service/kiosk"
	"vend_kiosk/internal/infrastructure/journal"
	"vend_kiosk/internal/infrastructure/sales"
	"vend_kiosk/pkg/rest"
	"vend_kiosk/pkg/tests"
)

var denominations = []int64{2000, 5000, 10000, 20000, 50000}

type fixture struct {
	api       tests.APIClient
	inventory *kiosk.InventoryClientMock
}

func newFixture(t *testing.T, receipts *ReceiptServer) *fixture {
	t.Helper()

	inventory := &kiosk.InventoryClientMock{
		FetchAllFunc: func(context.Context) ([]entity.Item, error) {
			return []entity.Item{
				{ID: 1, Name: "Cola", Price: 5000, Stock: 2},
				{ID: 2, Name: "Chips", Price: 3000, Stock: 0},
			}, nil
		},
		ReplaceItemFunc: func(context.Context, entity.Item) error {
			return nil
		},
	}
	notifier := &kiosk.NotifierMock{
		NotifyFunc: func(context.Context, entity.Notification) error { return nil },
	}

	ctrl := kiosk.NewController(inventory, notifier, journal.Nop{})
	require.NoError(t, ctrl.LoadCatalog(context.Background()))

	srv := httptest.NewServer(NewRouter(NewServer(NewKioskServer(ctrl, denominations), receipts), 4096))
	t.Cleanup(srv.Close)

	return &fixture{
		api:       tests.NewAPIClient(srv.URL, srv.Client()),
		inventory: inventory,
	}
}

func TestServer_Kiosk(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, nil)

	var state rest.KioskState

	resp, err := f.api.Get(ctx, "/v1/kiosk", &state, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Len(state.Catalog, 2)
	r.False(state.Catalog[1].InStock)
	r.Equal(denominations, state.Denominations)
	r.Nil(state.Selected)

	var balance rest.Balance

	for _, amount := range []int64{5000, 2000} {
		resp, err = f.api.Post(ctx, "/v1/kiosk/balance", rest.AddBalanceRequest{Amount: amount}, &balance, nil)
		r.NoError(err)
		r.Equal(http.StatusOK, resp.StatusCode)
	}

	r.Equal(int64(7000), balance.Balance)

	var item rest.Item

	id := int64(1)
	resp, err = f.api.Put(ctx, "/v1/kiosk/selection", rest.SelectItemRequest{ItemID: &id}, &item, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("Cola", item.Name)

	var receipt rest.Receipt

	resp, err = f.api.Post(ctx, "/v1/kiosk/purchase", nil, &receipt, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(int64(5000), receipt.Price)
	r.Equal(int64(2000), receipt.Change)
	r.Equal(int64(7000), receipt.Paid)

	resp, err = f.api.Get(ctx, "/v1/kiosk", &state, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Zero(state.Balance)
	r.NotNil(state.Selected)
}

func TestServer_Errors(t *testing.T) {
	t.Parallel()

	one := int64(1)
	missing := int64(42)

	testCases := []struct {
		name       string
		method     string
		endpoint   string
		body       any
		rawBody    string
		setup      func(f *fixture)
		wantStatus int
		wantCode   rest.ErrorCode
	}{
		{
			name:       "purchase without selection",
			method:     http.MethodPost,
			endpoint:   "/v1/kiosk/purchase",
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "NoSelection",
		},
		{
			name:     "purchase without money",
			method:   http.MethodPost,
			endpoint: "/v1/kiosk/purchase",
			setup: func(f *fixture) {
				_, _ = f.api.Put(context.Background(), "/v1/kiosk/selection", rest.SelectItemRequest{ItemID: &one}, nil, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "InsufficientFunds",
		},
		{
			name:     "inventory rejects the update",
			method:   http.MethodPost,
			endpoint: "/v1/kiosk/purchase",
			setup: func(f *fixture) {
				f.inventory.ReplaceItemFunc = func(context.Context, entity.Item) error {
					return errors.New("status 500")
				}
				_, _ = f.api.Post(context.Background(), "/v1/kiosk/balance", rest.AddBalanceRequest{Amount: 5000}, nil, nil)
				_, _ = f.api.Put(context.Background(), "/v1/kiosk/selection", rest.SelectItemRequest{ItemID: &one}, nil, nil)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "PersistenceError",
		},
		{
			name:       "unknown denomination",
			method:     http.MethodPost,
			endpoint:   "/v1/kiosk/balance",
			body:       rest.AddBalanceRequest{Amount: 1234},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "InvalidAmount",
		},
		{
			name:       "negative amount",
			method:     http.MethodPost,
			endpoint:   "/v1/kiosk/balance",
			body:       rest.AddBalanceRequest{Amount: -5000},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ValidationError",
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			endpoint:   "/v1/kiosk/balance",
			rawBody:    `{"amount":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "ValidationError",
		},
		{
			name:       "unknown item",
			method:     http.MethodPut,
			endpoint:   "/v1/kiosk/selection",
			body:       rest.SelectItemRequest{ItemID: &missing},
			wantStatus: http.StatusNotFound,
			wantCode:   "ItemNotFound",
		},
		{
			name:       "selection without item id",
			method:     http.MethodPut,
			endpoint:   "/v1/kiosk/selection",
			body:       map[string]any{},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ValidationError",
		},
		{
			name:     "catalog refresh fails",
			method:   http.MethodPost,
			endpoint: "/v1/kiosk/catalog/refresh",
			setup: func(f *fixture) {
				f.inventory.FetchAllFunc = func(context.Context) ([]entity.Item, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "CatalogLoadError",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			ctx := context.Background()
			f := newFixture(t, nil)

			if tc.setup != nil {
				tc.setup(f)
			}

			var (
				apiErr rest.Error
				resp   *http.Response
				err    error
			)

			switch {
			case tc.rawBody != "":
				resp, err = f.api.PostJSON(ctx, tc.endpoint, tc.rawBody, nil, &apiErr)
			case tc.method == http.MethodPut:
				resp, err = f.api.Put(ctx, tc.endpoint, tc.body, nil, &apiErr)
			default:
				resp, err = f.api.Post(ctx, tc.endpoint, tc.body, nil, &apiErr)
			}

			r.NoError(err)
			r.Equal(tc.wantStatus, resp.StatusCode)
			r.Equal(tc.wantCode, apiErr.Code)
			r.NotEmpty(apiErr.SupportID)
		})
	}
}

type fakeReceipts struct {
	limit int
}

func (f *fakeReceipts) ListRecent(_ context.Context, limit int) ([]entity.Receipt, error) {
	f.limit = limit

	return []entity.Receipt{{
		ID:          "r1",
		ItemID:      1,
		ItemName:    "Cola",
		Price:       5000,
		Paid:        5000,
		PurchasedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}, nil
}

type fakeSales struct{}

func (fakeSales) Day(_ context.Context, date string) (sales.Day, error) {
	return sales.Day{Date: date, Revenue: 10000, Items: map[int64]int64{1: 2}}, nil
}

func TestServer_Receipts(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()

	receipts := &fakeReceipts{}
	f := newFixture(t, NewReceiptServer(receipts, fakeSales{}))

	var list rest.ReceiptList

	resp, err := f.api.Get(ctx, "/v1/receipts?limit=500", &list, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(maxReceiptsLimit, receipts.limit)
	r.Len(list.Receipts, 1)
	r.Equal("2026-03-01T10:00:00Z", list.Receipts[0].PurchasedAt)

	var apiErr rest.Error

	resp, err = f.api.Get(ctx, "/v1/receipts?limit=zero", nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)

	var day rest.SalesDay

	resp, err = f.api.Get(ctx, "/v1/sales/2026-03-01", &day, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(map[string]int64{"1": 2}, day.Items)

	resp, err = f.api.Get(ctx, "/v1/sales/march", nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ReceiptsDisabled(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	f := newFixture(t, nil)

	resp, err := f.api.Get(context.Background(), "/v1/receipts", nil, nil)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
}
