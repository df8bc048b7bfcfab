package ledger

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

// codeRetryLimit bounds the ledger code collision retry before the
// failure is surfaced as fatal.
const codeRetryLimit = 3

// ledgerCodeConstraint is the unique index backing transaction codes.
const ledgerCodeConstraint = "transactions_transaction_code_key"

// ItemStore is the slice of the item repository the mutation engine
// needs: lock, quantity write, price refresh. All methods run on the
// mutation's transaction.
type ItemStore interface {
	LockItem(tx *goqu.TxDatabase, id uuid.UUID) (*models.StockItem, error)
	UpdateStockLevel(tx *goqu.TxDatabase, id uuid.UUID, newStock int) error
	RefreshBuyPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error
	RefreshSellPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error
}

type EntryWriter interface {
	InsertEntry(tx *goqu.TxDatabase, entry *models.LedgerEntry) error
}

// AlertEvaluator runs after the mutation commits. Its failures are
// logged and swallowed; they can never roll back a committed mutation.
type AlertEvaluator interface {
	Evaluate(item *models.StockItem) (*models.StockAlert, error)
}

type LedgerService struct {
	r       *repository.Repository
	entries EntryWriter
	items   ItemStore
	alerts  AlertEvaluator
	logger  *zap.Logger
	runTx   func(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) error
}

func NewLedgerService(r *repository.Repository, entries EntryWriter, items ItemStore, alerts AlertEvaluator, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		r:       r,
		entries: entries,
		items:   items,
		alerts:  alerts,
		logger:  logger,
		runTx:   repository.WithTransaction,
	}
}

// ApplyMovement is the single authorized path for changing an item's
// current stock. The quantity update and the ledger entry commit as one
// transaction; the item row lock serializes concurrent movements against
// the same item.
func (s *LedgerService) ApplyMovement(req models.MovementRequest) (*models.LedgerEntry, int, error) {
	if req.Quantity <= 0 {
		return nil, 0, &custom_error.InvalidQuantityError{Quantity: req.Quantity}
	}
	if !req.Kind.IsValid() {
		return nil, 0, fmt.Errorf("invalid movement kind: %s", req.Kind)
	}
	if req.Kind == metadata.MovementAdjustment && req.Direction != metadata.AdjustIncrease && req.Direction != metadata.AdjustDecrease {
		return nil, 0, fmt.Errorf("adjustment movement requires a direction (increase or decrease)")
	}

	var (
		entry   *models.LedgerEntry
		updated models.StockItem
	)

	err := s.runTx(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		item, err := s.items.LockItem(tx, req.ItemID)
		if err != nil {
			return err
		}

		delta := movementDelta(req)
		newStock := item.CurrentStock + delta
		if newStock < 0 {
			return &custom_error.InsufficientStockError{
				ItemID:    item.ID,
				Available: item.CurrentStock,
				Requested: req.Quantity,
			}
		}

		unitPrice := resolveUnitPrice(req, item)
		entry = buildEntry(req, item, newStock, unitPrice)

		if err := s.insertWithCodeRetry(tx, entry); err != nil {
			return err
		}

		if err := s.items.UpdateStockLevel(tx, item.ID, newStock); err != nil {
			return err
		}

		if err := s.refreshPrices(tx, req, item.ID, unitPrice); err != nil {
			return err
		}

		updated = *item
		updated.CurrentStock = newStock
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.evaluateAlerts(&updated)

	return entry, updated.CurrentStock, nil
}

// Transfer moves quantity between two items as two independent atomic
// mutations: a transfer-out on the source, then an in-movement on the
// destination referencing the source entry code. A failed destination
// leg leaves the committed source leg in place and is reported to the
// caller for manual reconciliation.
func (s *LedgerService) Transfer(req models.TransferRequest) (*models.LedgerEntry, *models.LedgerEntry, error) {
	if req.SourceItemID == req.DestinationItemID {
		return nil, nil, fmt.Errorf("transfer source and destination must differ")
	}

	outEntry, _, err := s.ApplyMovement(models.MovementRequest{
		ItemID:    req.SourceItemID,
		Kind:      metadata.MovementTransfer,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Reference: fmt.Sprintf("TRANSFER-TO:%s", req.DestinationItemID),
		Notes:     req.Notes,
		ActorID:   req.ActorID,
	})
	if err != nil {
		return nil, nil, err
	}

	inEntry, _, err := s.ApplyMovement(models.MovementRequest{
		ItemID:    req.DestinationItemID,
		Kind:      metadata.MovementIn,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Reference: outEntry.Code,
		Notes:     req.Notes,
		ActorID:   req.ActorID,
	})
	if err != nil {
		return outEntry, nil, fmt.Errorf("transfer source leg %s committed but destination leg failed: %w", outEntry.Code, err)
	}

	return outEntry, inEntry, nil
}

func (s *LedgerService) insertWithCodeRetry(tx *goqu.TxDatabase, entry *models.LedgerEntry) error {
	var lastErr error
	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		if attempt > 0 {
			entry.Code = metadata.NewTransactionCode(time.Now())
		}

		err := s.entries.InsertEntry(tx, entry)
		if err == nil {
			return nil
		}
		if !custom_error.IsUniqueViolation(err, ledgerCodeConstraint) {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
		lastErr = err
	}

	s.logger.Error("ledger code collision retries exhausted",
		zap.String("code", entry.Code),
		zap.Error(lastErr),
	)
	return &custom_error.DuplicateCodeError{Code: entry.Code, Attempts: codeRetryLimit}
}

func (s *LedgerService) refreshPrices(tx *goqu.TxDatabase, req models.MovementRequest, itemID uuid.UUID, unitPrice *decimal.Decimal) error {
	switch req.Kind {
	case metadata.MovementIn:
		// Only an explicit purchase price refreshes the item.
		if req.UnitPrice != nil {
			return s.items.RefreshBuyPrice(tx, itemID, *req.UnitPrice)
		}
	case metadata.MovementOut:
		if unitPrice != nil {
			return s.items.RefreshSellPrice(tx, itemID, *unitPrice)
		}
	}
	return nil
}

func (s *LedgerService) evaluateAlerts(item *models.StockItem) {
	if s.alerts == nil {
		return
	}

	alert, err := s.alerts.Evaluate(item)
	if err != nil {
		s.logger.Warn("alert evaluation failed after committed mutation",
			zap.String("item_id", item.ID.String()),
			zap.Error(err),
		)
		return
	}
	if alert != nil {
		s.logger.Info("stock alert raised",
			zap.String("item_id", item.ID.String()),
			zap.String("kind", alert.Kind.String()),
			zap.Int("current_stock", alert.CurrentStock),
		)
	}
}

func movementDelta(req models.MovementRequest) int {
	switch req.Kind {
	case metadata.MovementIn, metadata.MovementReturn:
		return req.Quantity
	case metadata.MovementOut, metadata.MovementTransfer:
		return -req.Quantity
	case metadata.MovementAdjustment:
		if req.Direction == metadata.AdjustDecrease {
			return -req.Quantity
		}
		return req.Quantity
	default:
		return 0
	}
}

// resolveUnitPrice defaults an unpriced out-movement to the item's
// current sell price.
func resolveUnitPrice(req models.MovementRequest, item *models.StockItem) *decimal.Decimal {
	if req.UnitPrice != nil {
		return req.UnitPrice
	}
	if req.Kind == metadata.MovementOut {
		price := item.SellPrice
		return &price
	}
	return nil
}

func buildEntry(req models.MovementRequest, item *models.StockItem, newStock int, unitPrice *decimal.Decimal) *models.LedgerEntry {
	var totalPrice *decimal.Decimal
	if unitPrice != nil {
		total := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		totalPrice = &total
	}

	return &models.LedgerEntry{
		ID:            uuid.New(),
		Code:          metadata.NewTransactionCode(time.Now()),
		ItemID:        item.ID,
		Kind:          req.Kind,
		Quantity:      req.Quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    totalPrice,
		PreviousStock: item.CurrentStock,
		NewStock:      newStock,
		Reference:     req.Reference,
		Notes:         req.Notes,
		CreatedBy:     req.ActorID,
	}
}
