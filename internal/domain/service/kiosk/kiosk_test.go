package kiosk

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/tests"
)

var (
	cola  = entity.Item{ID: 1, Name: "Cola", Price: 5000, Stock: 3}
	chips = entity.Item{ID: 2, Name: "Chips", Price: 3000, Stock: 0}
	water = entity.Item{ID: 3, Name: "Water", Price: 2000, Stock: 1}
)

type fixture struct {
	inventory *InventoryClientMock
	notifier  *NotifierMock
	journal   *ReceiptJournalMock
	ctrl      *Controller
}

func newFixture(t *testing.T, catalog ...entity.Item) *fixture {
	t.Helper()

	f := &fixture{
		inventory: &InventoryClientMock{
			FetchAllFunc: func(context.Context) ([]entity.Item, error) {
				return catalog, nil
			},
			ReplaceItemFunc: func(context.Context, entity.Item) error {
				return nil
			},
		},
		notifier: &NotifierMock{
			NotifyFunc: func(context.Context, entity.Notification) error {
				return nil
			},
		},
		journal: &ReceiptJournalMock{
			RecordFunc: func(context.Context, entity.Receipt) error {
				return nil
			},
		},
	}

	f.ctrl = NewController(f.inventory, f.notifier, f.journal).
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })

	require.NoError(t, f.ctrl.LoadCatalog(context.Background()))

	return f
}

func (f *fixture) notifications() []entity.Notification {
	calls := f.notifier.NotifyCalls()
	notes := make([]entity.Notification, 0, len(calls))

	for _, call := range calls {
		notes = append(notes, call.N)
	}

	return notes
}

func (f *fixture) kinds() []entity.NotificationKind {
	return lo.Map(f.notifications(), func(n entity.Notification, _ int) entity.NotificationKind {
		return n.Kind
	})
}

func TestController_LoadCatalog(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola, chips)

	r.Equal([]entity.Item{cola, chips}, f.ctrl.Catalog())
	r.NoError(f.ctrl.Ready(ctx))

	f.inventory.FetchAllFunc = func(context.Context) ([]entity.Item, error) {
		return nil, errors.New("connection refused")
	}

	err := f.ctrl.LoadCatalog(ctx)
	r.Error(err)
	r.True(domain.HasCode(err, errcodes.CatalogLoadError))
	r.Equal([]entity.Item{cola, chips}, f.ctrl.Catalog(), "previous catalog is kept")
	r.Equal([]entity.NotificationKind{entity.NotificationCatalogLoadFailed}, f.kinds())
}

func TestController_LoadCatalog_KeepsInventoryCode(t *testing.T) {
	t.Parallel()

	r := require.New(t)

	inventory := &InventoryClientMock{
		FetchAllFunc: func(context.Context) ([]entity.Item, error) {
			return nil, domain.NewError(errcodes.CatalogLoadError, "unexpected status 503")
		},
	}
	notifier := &NotifierMock{NotifyFunc: func(context.Context, entity.Notification) error { return nil }}

	ctrl := NewController(inventory, notifier, nil)

	err := ctrl.LoadCatalog(context.Background())
	r.True(domain.HasCode(err, errcodes.CatalogLoadError))
	r.Contains(err.Error(), "unexpected status 503")
	r.Error(ctrl.Ready(context.Background()), "never loaded")
	r.Empty(ctrl.Catalog())
}

func TestController_AddBalance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		amounts     []int64
		wantBalance int64
		wantErr     bool
	}{
		{
			name:        "single denomination",
			amounts:     []int64{2000},
			wantBalance: 2000,
		},
		{
			name:        "accumulates",
			amounts:     []int64{2000, 5000, 50000},
			wantBalance: 57000,
		},
		{
			name:        "zero",
			amounts:     []int64{0},
			wantBalance: 0,
			wantErr:     true,
		},
		{
			name:        "negative",
			amounts:     []int64{1000, -500},
			wantBalance: 1000,
			wantErr:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			ctx := context.Background()
			f := newFixture(t, cola)

			var err error
			for _, amount := range tc.amounts {
				err = f.ctrl.AddBalance(ctx, amount)
			}

			if tc.wantErr {
				r.True(domain.HasCode(err, errcodes.InvalidAmount))
				r.Equal(entity.NotificationInvalidAmount, f.kinds()[len(f.kinds())-1])
			} else {
				r.NoError(err)
				r.Len(f.kinds(), len(tc.amounts))
			}

			r.Equal(tc.wantBalance, f.ctrl.Balance())
		})
	}
}

func TestController_AddBalance_Overflow(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	r.NoError(f.ctrl.AddBalance(ctx, math.MaxInt64-10))
	r.NoError(f.ctrl.AddBalance(ctx, 10))

	err := f.ctrl.AddBalance(ctx, 1)
	r.True(domain.HasCode(err, errcodes.InvalidAmount))
	r.Equal(int64(math.MaxInt64), f.ctrl.Balance())
}

func TestController_AddBalance_Random(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	amounts := tests.NewRandomizer().Amounts([]int64{2000, 5000, 10000, 20000, 50000}, 50)

	for _, amount := range amounts {
		r.NoError(f.ctrl.AddBalance(ctx, amount))
	}

	r.Equal(lo.Sum(amounts), f.ctrl.Balance())

	notified := lo.Map(f.notifications(), func(n entity.Notification, _ int) int64 { return n.Amount })
	r.Equal(amounts, notified)
}

func TestController_Purchase_Guards(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		balance  int64
		selected *entity.Item
		wantCode string
		wantNote entity.Notification
	}{
		{
			name:     "nothing selected",
			balance:  10000,
			wantCode: errcodes.NoSelection.String(),
			wantNote: entity.Notification{Kind: entity.NotificationNoSelection},
		},
		{
			name:     "selected item left the catalog",
			balance:  10000,
			selected: &entity.Item{ID: 42, Name: "Ghost", Price: 100, Stock: 1},
			wantCode: errcodes.NoSelection.String(),
			wantNote: entity.Notification{Kind: entity.NotificationNoSelection},
		},
		{
			name:     "out of stock",
			balance:  10000,
			selected: &chips,
			wantCode: errcodes.OutOfStock.String(),
			wantNote: entity.Notification{Kind: entity.NotificationOutOfStock},
		},
		{
			name:     "out of stock is checked before funds",
			balance:  0,
			selected: &chips,
			wantCode: errcodes.OutOfStock.String(),
			wantNote: entity.Notification{Kind: entity.NotificationOutOfStock},
		},
		{
			name:     "insufficient funds",
			balance:  2000,
			selected: &cola,
			wantCode: errcodes.InsufficientFunds.String(),
			wantNote: entity.Notification{Kind: entity.NotificationInsufficientFunds, Amount: 3000},
		},
		{
			name:     "zero balance",
			selected: &water,
			wantCode: errcodes.InsufficientFunds.String(),
			wantNote: entity.Notification{Kind: entity.NotificationInsufficientFunds, Amount: 2000},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			ctx := context.Background()
			f := newFixture(t, cola, chips, water)

			if tc.balance > 0 {
				r.NoError(f.ctrl.AddBalance(ctx, tc.balance))
			}

			if tc.selected != nil {
				f.ctrl.SelectItem(ctx, *tc.selected)
			}

			before := len(f.notifier.NotifyCalls())

			_, err := f.ctrl.Purchase(ctx)
			r.Error(err)

			code, ok := domain.GetCode(err)
			r.True(ok)
			r.Equal(tc.wantCode, code.String())

			r.Equal(tc.balance, f.ctrl.Balance(), "balance untouched")
			r.Empty(f.inventory.ReplaceItemCalls())
			r.Empty(f.journal.RecordCalls())
			r.Equal([]entity.Notification{tc.wantNote}, f.notifications()[before:])
			r.Equal([]entity.Item{cola, chips, water}, f.ctrl.Catalog())
		})
	}
}

func TestController_Purchase_StaleSelectionIsCleared(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	f.ctrl.SelectItem(ctx, water)

	_, err := f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.NoSelection))
	r.Nil(f.ctrl.State(ctx).Selected)
}

func TestController_Purchase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		balance    []int64
		item       entity.Item
		wantChange int64
		wantKinds  []entity.NotificationKind
	}{
		{
			name:       "with change",
			balance:    []int64{5000, 2000},
			item:       cola,
			wantChange: 2000,
			wantKinds: []entity.NotificationKind{
				entity.NotificationPurchaseSucceeded,
				entity.NotificationChangeReturned,
			},
		},
		{
			name:       "exact amount",
			balance:    []int64{2000},
			item:       water,
			wantChange: 0,
			wantKinds:  []entity.NotificationKind{entity.NotificationPurchaseSucceeded},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			ctx := context.Background()
			f := newFixture(t, cola, chips, water)

			for _, amount := range tc.balance {
				r.NoError(f.ctrl.AddBalance(ctx, amount))
			}

			f.ctrl.SelectItem(ctx, tc.item)
			before := len(f.notifier.NotifyCalls())

			receipt, err := f.ctrl.Purchase(ctx)
			r.NoError(err)

			r.NotEmpty(receipt.ID)
			r.Equal(tc.item.ID, receipt.ItemID)
			r.Equal(tc.item.Name, receipt.ItemName)
			r.Equal(tc.item.Price, receipt.Price)
			r.Equal(lo.Sum(tc.balance), receipt.Paid)
			r.Equal(tc.wantChange, receipt.Change)
			r.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), receipt.PurchasedAt)

			r.Zero(f.ctrl.Balance())
			r.Equal(tc.wantKinds, f.kinds()[before:])

			replaced := f.inventory.ReplaceItemCalls()
			r.Len(replaced, 1)
			r.Equal(tc.item.WithStock(tc.item.Stock-1), replaced[0].Item)

			r.Len(f.journal.RecordCalls(), 1)
			r.Equal(receipt, f.journal.RecordCalls()[0].Receipt)

			r.Len(f.inventory.FetchAllCalls(), 2, "catalog is reloaded after commit")

			state := f.ctrl.State(ctx)
			r.NotNil(state.Selected, "selection survives by default")
			r.Equal(tc.item.ID, state.Selected.ID)
			r.False(state.PurchaseInFlight)
		})
	}
}

func TestController_Purchase_ChangeAmount(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	r.NoError(f.ctrl.AddBalance(ctx, 10000))
	f.ctrl.SelectItem(ctx, cola)

	_, err := f.ctrl.Purchase(ctx)
	r.NoError(err)

	last := f.notifications()[len(f.notifications())-1]
	r.Equal(entity.Notification{Kind: entity.NotificationChangeReturned, Amount: 5000}, last)
}

func TestController_Purchase_LocalStockWithoutReload(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola, water)

	f.inventory.FetchAllFunc = func(context.Context) ([]entity.Item, error) {
		return nil, errors.New("timeout")
	}

	before := f.ctrl.Catalog()

	r.NoError(f.ctrl.AddBalance(ctx, 2000))
	f.ctrl.SelectItem(ctx, water)

	_, err := f.ctrl.Purchase(ctx)
	r.NoError(err, "reload failure does not fail the purchase")

	r.Equal([]entity.Item{cola, water.WithStock(0)}, f.ctrl.Catalog())
	r.Equal(water, before[1], "earlier snapshots are not mutated")
	r.Equal(entity.NotificationCatalogLoadFailed, f.kinds()[len(f.kinds())-1])

	r.NoError(f.ctrl.AddBalance(ctx, 2000))

	_, err = f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.OutOfStock))
}

func TestController_Purchase_RollbackOnPersistenceError(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	f.inventory.ReplaceItemFunc = func(context.Context, entity.Item) error {
		return domain.NewError(errcodes.PersistenceError, "unexpected status 500")
	}

	r.NoError(f.ctrl.AddBalance(ctx, 10000))
	f.ctrl.SelectItem(ctx, cola)
	before := len(f.notifier.NotifyCalls())

	_, err := f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.PersistenceError))

	r.Equal(int64(10000), f.ctrl.Balance())
	r.Equal([]entity.Notification{{Kind: entity.NotificationPurchaseFailed, ItemName: "Cola"}}, f.notifications()[before:])
	r.Empty(f.journal.RecordCalls())
	r.Equal([]entity.Item{cola}, f.ctrl.Catalog())
	r.False(f.ctrl.State(ctx).PurchaseInFlight)
}

func TestController_Purchase_ClearSelectionOnSuccess(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)
	f.ctrl.WithClearSelectionOnSuccess(true)

	r.NoError(f.ctrl.AddBalance(ctx, 5000))
	_, err := f.ctrl.SelectByID(ctx, cola.ID)
	r.NoError(err)

	_, err = f.ctrl.Purchase(ctx)
	r.NoError(err)
	r.Nil(f.ctrl.State(ctx).Selected)

	r.NoError(f.ctrl.AddBalance(ctx, 5000))

	_, err = f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.NoSelection))
}

func TestController_Purchase_JournalFailureKeepsPurchase(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	f.journal.RecordFunc = func(context.Context, entity.Receipt) error {
		return errors.New("redis down")
	}

	r.NoError(f.ctrl.AddBalance(ctx, 5000))
	f.ctrl.SelectItem(ctx, cola)

	receipt, err := f.ctrl.Purchase(ctx)
	r.NoError(err)
	r.Equal(cola.ID, receipt.ItemID)
	r.Zero(f.ctrl.Balance())
}

func TestController_Purchase_InProgress(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	entered := make(chan struct{})
	release := make(chan struct{})

	f.inventory.ReplaceItemFunc = func(context.Context, entity.Item) error {
		close(entered)
		<-release
		return errors.New("gateway timeout")
	}

	r.NoError(f.ctrl.AddBalance(ctx, 5000))
	f.ctrl.SelectItem(ctx, cola)

	var (
		wg       sync.WaitGroup
		firstErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = f.ctrl.Purchase(ctx)
	}()

	<-entered

	state := f.ctrl.State(ctx)
	r.True(state.PurchaseInFlight)
	r.Zero(state.Balance, "debit is applied before the remote call")

	_, err := f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.PurchaseInProgress))

	r.NoError(f.ctrl.AddBalance(ctx, 2000))

	close(release)
	wg.Wait()

	r.True(domain.HasCode(firstErr, errcodes.PersistenceError))
	r.Equal(int64(7000), f.ctrl.Balance(), "rollback keeps amounts added meanwhile")
	r.Len(f.inventory.ReplaceItemCalls(), 1)
	r.Contains(f.kinds(), entity.NotificationPurchaseInProgress)
}

func TestController_Purchase_DetachedFromCaller(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	f := newFixture(t, cola)

	var remoteErr error

	f.inventory.ReplaceItemFunc = func(ctx context.Context, _ entity.Item) error {
		remoteErr = ctx.Err()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	r.NoError(f.ctrl.AddBalance(ctx, 5000))
	f.ctrl.SelectItem(ctx, cola)
	cancel()

	_, err := f.ctrl.Purchase(ctx)
	r.NoError(err)
	r.NoError(remoteErr)
}

func TestController_SelectByID(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola, water)

	item, err := f.ctrl.SelectByID(ctx, water.ID)
	r.NoError(err)
	r.Equal(water, item)
	r.Equal(&water, f.ctrl.State(ctx).Selected)

	_, err = f.ctrl.SelectByID(ctx, 99)
	r.True(domain.HasCode(err, errcodes.ItemNotFound))
	r.Equal(&water, f.ctrl.State(ctx).Selected, "failed lookup keeps previous selection")

	f.ctrl.SelectItem(ctx, cola)
	r.Equal(&cola, f.ctrl.State(ctx).Selected)
}

func TestController_LoadCatalog_StaleSnapshotAfterPurchase(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, water)

	entered := make(chan struct{})
	release := make(chan struct{})

	var (
		mu      sync.Mutex
		fetches int
	)

	// The first fetch reads the inventory before the sale and answers late.
	// Later fetches see the decremented stock.
	f.inventory.FetchAllFunc = func(context.Context) ([]entity.Item, error) {
		mu.Lock()
		fetches++
		first := fetches == 1
		mu.Unlock()

		if first {
			close(entered)
			<-release

			return []entity.Item{water}, nil
		}

		return []entity.Item{water.WithStock(0)}, nil
	}

	var (
		wg      sync.WaitGroup
		loadErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		loadErr = f.ctrl.LoadCatalog(ctx)
	}()

	<-entered

	r.NoError(f.ctrl.AddBalance(ctx, 2000))
	f.ctrl.SelectItem(ctx, water)

	_, err := f.ctrl.Purchase(ctx)
	r.NoError(err)

	close(release)
	wg.Wait()

	r.NoError(loadErr)
	r.Equal([]entity.Item{water.WithStock(0)}, f.ctrl.Catalog(), "late snapshot does not restore the sold unit")

	r.NoError(f.ctrl.AddBalance(ctx, 2000))

	_, err = f.ctrl.Purchase(ctx)
	r.True(domain.HasCode(err, errcodes.OutOfStock))
	r.Len(f.inventory.ReplaceItemCalls(), 1, "the last unit is sold once")
}

func TestController_LoadCatalog_DuringPendingPurchase(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	f := newFixture(t, cola)

	entered := make(chan struct{})
	release := make(chan struct{})

	f.inventory.ReplaceItemFunc = func(context.Context, entity.Item) error {
		close(entered)
		<-release
		return nil
	}

	r.NoError(f.ctrl.AddBalance(ctx, 5000))
	f.ctrl.SelectItem(ctx, cola)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.ctrl.Purchase(ctx)
	}()

	<-entered

	// Whether the remote decrement is already applied is unknown here.
	f.inventory.FetchAllFunc = func(context.Context) ([]entity.Item, error) {
		return []entity.Item{cola.WithStock(2), water}, nil
	}

	r.NoError(f.ctrl.LoadCatalog(ctx))
	r.Equal([]entity.Item{cola}, f.ctrl.Catalog(), "snapshot is dropped while the purchase is pending")

	close(release)
	wg.Wait()

	r.Equal([]entity.Item{cola.WithStock(2), water}, f.ctrl.Catalog(), "reconciliation after commit is applied")
}

func TestController_Purchase_CancelledCallerIsStillNotified(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		remoteErr error
		wantKinds []entity.NotificationKind
	}{
		{
			name: "committed",
			wantKinds: []entity.NotificationKind{
				entity.NotificationBalanceAdded,
				entity.NotificationPurchaseSucceeded,
				entity.NotificationChangeReturned,
			},
		},
		{
			name:      "rolled back",
			remoteErr: errors.New("status 500"),
			wantKinds: []entity.NotificationKind{
				entity.NotificationBalanceAdded,
				entity.NotificationPurchaseFailed,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			f := newFixture(t, water)

			f.inventory.FetchAllFunc = func(ctx context.Context) ([]entity.Item, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				return []entity.Item{water.WithStock(0)}, nil
			}
			f.inventory.ReplaceItemFunc = func(context.Context, entity.Item) error {
				return tc.remoteErr
			}

			r.NoError(f.ctrl.AddBalance(context.Background(), 5000))
			f.ctrl.SelectItem(context.Background(), water)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, _ = f.ctrl.Purchase(ctx)

			r.Equal(tc.wantKinds, f.kinds(), "no catalog_load_failed from the reconciliation")

			for _, call := range f.notifier.NotifyCalls() {
				r.NoError(call.Ctx.Err(), call.N.Kind)
			}
		})
	}
}
