package kiosk

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/samber/lo"

	"vend_kiosk/internal/domain"
	"vend_kiosk/internal/domain/entity"
	"vend_kiosk/pkg/contextx"
	"vend_kiosk/pkg/errcodes"
	"vend_kiosk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//go:generate moq -rm -out kiosk_mock.gen.go . InventoryClient:InventoryClientMock Notifier:NotifierMock ReceiptJournal:ReceiptJournalMock

type InventoryClient interface {
	FetchAll(ctx context.Context) ([]entity.Item, error)
	ReplaceItem(ctx context.Context, item entity.Item) error
}

type Notifier interface {
	Notify(ctx context.Context, n entity.Notification) error
}

type ReceiptJournal interface {
	Record(ctx context.Context, receipt entity.Receipt) error
}

// transaction is a purchase whose stock decrement has not been confirmed by
// the inventory service yet.
type transaction struct {
	id              string
	item            entity.Item
	previousBalance int64
	delta           int64
}

// Controller owns the kiosk session: catalog snapshot, balance and selection.
// At most one purchase is in flight at a time.
type Controller struct {
	inventory InventoryClient
	notifier  Notifier
	journal   ReceiptJournal
	now       func() time.Time

	clearSelectionOnSuccess bool

	mu            sync.Mutex
	catalog       []entity.Item
	catalogLoaded bool
	generation    uint64
	balance       int64
	selected      *int64
	pending       *transaction
}

func NewController(
	inventory InventoryClient,
	notifier Notifier,
	journal ReceiptJournal,
) *Controller {
	return &Controller{
		inventory: inventory,
		notifier:  notifier,
		journal:   journal,
		now:       time.Now,
	}
}

// WithClearSelectionOnSuccess drops the selection after a committed purchase.
func (c *Controller) WithClearSelectionOnSuccess(clear bool) *Controller {
	c.clearSelectionOnSuccess = clear
	return c
}

func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// LoadCatalog replaces the catalog with the inventory service's current list.
// On failure the previous catalog is kept. A list fetched while a purchase was
// opened or committed may predate that purchase and is dropped.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	items, err := c.inventory.FetchAll(ctx)
	if err != nil {
		catalogLoadsTotal.WithLabelValues(outcomeFailed).Inc()

		err = domain.EnsureCode(err, errcodes.CatalogLoadError, "catalog unavailable")
		logger(ctx).Error("catalog load failed", logx.Error(err))
		c.notify(ctx, entity.Notification{Kind: entity.NotificationCatalogLoadFailed})

		return fmt.Errorf("inventory.FetchAll: %w", err)
	}

	c.mu.Lock()
	if c.generation != generation || c.pending != nil {
		c.mu.Unlock()

		catalogLoadsTotal.WithLabelValues(outcomeStale).Inc()
		logger(ctx).Info("catalog overlapped a purchase, snapshot dropped")

		return nil
	}

	c.catalog = slices.Clone(items)
	c.catalogLoaded = true
	c.mu.Unlock()

	catalogLoadsTotal.WithLabelValues(outcomeOK).Inc()
	logger(ctx).Debug("catalog loaded", slog.Int(logx.FieldItemsCount, len(items)))

	return nil
}

// AddBalance credits an inserted amount.
func (c *Controller) AddBalance(ctx context.Context, amount int64) error {
	c.mu.Lock()

	if amount <= 0 || amount > math.MaxInt64-c.balance {
		c.mu.Unlock()
		c.notify(ctx, entity.Notification{Kind: entity.NotificationInvalidAmount, Amount: amount})

		return domain.NewError(errcodes.InvalidAmount, fmt.Sprintf("invalid amount %d", amount))
	}

	c.balance += amount
	balance := c.balance
	c.mu.Unlock()

	balanceAddedTotal.Add(float64(amount))
	logger(ctx).Info("balance added", slog.Int64(logx.FieldAmount, amount), slog.Int64(logx.FieldBalance, balance))
	c.notify(ctx, entity.Notification{Kind: entity.NotificationBalanceAdded, Amount: amount})

	return nil
}

// SelectItem makes item the purchase target. Stock and price are checked
// at purchase time only.
func (c *Controller) SelectItem(ctx context.Context, item entity.Item) {
	c.mu.Lock()
	id := item.ID
	c.selected = &id
	c.mu.Unlock()

	logger(ctx).Debug("item selected", slog.Int64(logx.FieldItemID, id))
}

// SelectByID selects the catalog item with the given id.
func (c *Controller) SelectByID(ctx context.Context, id int64) (entity.Item, error) {
	c.mu.Lock()
	item, ok := lo.Find(c.catalog, func(it entity.Item) bool { return it.ID == id })
	c.mu.Unlock()

	if !ok {
		return entity.Item{}, domain.NewError(errcodes.ItemNotFound, fmt.Sprintf("item %d not found", id))
	}

	c.SelectItem(ctx, item)

	return item, nil
}

// Purchase buys the selected item with the current balance.
func (c *Controller) Purchase(ctx context.Context) (entity.Receipt, error) {
	tx, err := c.begin()
	if err != nil {
		purchasesTotal.WithLabelValues(outcomeRejected).Inc()
		logger(ctx).Info("purchase rejected", logx.Error(err))
		c.notify(ctx, guardNotification(err))

		return entity.Receipt{}, err
	}

	log := logger(ctx).With(
		slog.String(logx.FieldTransactionID, tx.id),
		slog.Int64(logx.FieldItemID, tx.item.ID),
	)

	// Once the balance is debited the purchase runs to its outcome and reports
	// it even when the caller goes away.
	commitCtx := context.WithoutCancel(ctx)

	if err = c.inventory.ReplaceItem(commitCtx, tx.item.WithStock(tx.item.Stock-1)); err != nil {
		c.rollback(tx)
		purchasesTotal.WithLabelValues(outcomeFailed).Inc()

		err = domain.EnsureCode(err, errcodes.PersistenceError, "stock update failed")
		log.Error("purchase failed, balance restored", logx.Error(err))
		c.notify(commitCtx, entity.Notification{Kind: entity.NotificationPurchaseFailed, ItemName: tx.item.Name})

		return entity.Receipt{}, fmt.Errorf("inventory.ReplaceItem: %w", err)
	}

	receipt := c.commit(tx)
	purchasesTotal.WithLabelValues(outcomeCommitted).Inc()
	log.Info("purchase committed", slog.Int64(logx.FieldAmount, receipt.Price), slog.Int64("change", receipt.Change))

	c.notify(commitCtx, entity.Notification{Kind: entity.NotificationPurchaseSucceeded, ItemName: receipt.ItemName})

	if receipt.Change > 0 {
		c.notify(commitCtx, entity.Notification{Kind: entity.NotificationChangeReturned, Amount: receipt.Change})
	}

	if err = c.journal.Record(commitCtx, receipt); err != nil {
		log.Error("journal.Record", slog.String(logx.FieldReceiptID, receipt.ID), logx.Error(err))
	}

	// Reconciliation failures are reported by LoadCatalog itself.
	_ = c.LoadCatalog(commitCtx) //nolint:errcheck

	return receipt, nil
}

// begin runs the purchase guards and applies the optimistic balance debit.
func (c *Controller) begin() (*transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, domain.NewError(errcodes.PurchaseInProgress, "another purchase is in progress")
	}

	if c.selected == nil {
		return nil, domain.NewError(errcodes.NoSelection, "no item selected")
	}

	id := *c.selected

	item, ok := lo.Find(c.catalog, func(it entity.Item) bool { return it.ID == id })
	if !ok {
		c.selected = nil

		return nil, domain.NewError(errcodes.NoSelection, fmt.Sprintf("selected item %d is no longer offered", id))
	}

	if !item.InStock() {
		return nil, domain.NewError(errcodes.OutOfStock, fmt.Sprintf("%s is out of stock", item.Name))
	}

	if c.balance < item.Price {
		return nil, &shortfallError{
			AppError:  domain.NewError(errcodes.InsufficientFunds, "insufficient funds"),
			shortfall: item.Price - c.balance,
		}
	}

	tx := &transaction{
		id:              xid.New().String(),
		item:            item,
		previousBalance: c.balance,
		delta:           item.Price,
	}

	c.balance -= tx.delta
	c.pending = tx
	c.generation++

	return tx, nil
}

// commit hands out whatever balance remains as change. The local catalog
// entry is decremented until the next reload replaces it.
func (c *Controller) commit(tx *transaction) entity.Receipt {
	c.mu.Lock()
	defer c.mu.Unlock()

	change := c.balance
	c.balance = 0
	c.pending = nil
	c.generation++

	c.catalog = lo.Map(c.catalog, func(it entity.Item, _ int) entity.Item {
		if it.ID == tx.item.ID && it.Stock > 0 {
			return it.WithStock(it.Stock - 1)
		}
		return it
	})

	if c.clearSelectionOnSuccess {
		c.selected = nil
	}

	return entity.Receipt{
		ID:          tx.id,
		ItemID:      tx.item.ID,
		ItemName:    tx.item.Name,
		Price:       tx.delta,
		Paid:        tx.previousBalance,
		Change:      change,
		PurchasedAt: c.now(),
	}
}

// rollback returns the debited amount. Amounts added while the transaction
// was pending are kept.
func (c *Controller) rollback(tx *transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.balance += tx.delta
	c.pending = nil
}

func (c *Controller) notify(ctx context.Context, n entity.Notification) {
	if err := c.notifier.Notify(ctx, n); err != nil {
		logger(ctx).Error("notifier.Notify", slog.String(logx.FieldNotification, string(n.Kind)), logx.Error(err))
	}
}

// State returns a copy of the session.
func (c *Controller) State(context.Context) entity.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := entity.Snapshot{
		Catalog:          slices.Clone(c.catalog),
		Balance:          c.balance,
		PurchaseInFlight: c.pending != nil,
	}

	if c.selected != nil {
		id := *c.selected
		if item, ok := lo.Find(c.catalog, func(it entity.Item) bool { return it.ID == id }); ok {
			snapshot.Selected = &item
		}
	}

	return snapshot
}

func (c *Controller) Balance() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.balance
}

func (c *Controller) Catalog() []entity.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.catalog)
}

// Ready fails until the first catalog load succeeds.
func (c *Controller) Ready(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.catalogLoaded {
		return domain.NewError(errcodes.CatalogLoadError, "catalog not loaded")
	}

	return nil
}
