package ledger

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rakuszz0/Inventory/internal/repository"
	"github.com/rakuszz0/Inventory/pkg/models"
)

const (
	entriesTable = "transactions"
	itemsTable   = "inventory_items"
)

type LedgerRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *LedgerRepository {
	return &LedgerRepository{repository: r}
}

// InsertEntry writes one immutable ledger row inside the mutation's
// transaction. Unique violations on the code column bubble up raw so the
// service can retry with a fresh suffix.
func (r *LedgerRepository) InsertEntry(tx *goqu.TxDatabase, entry *models.LedgerEntry) error {
	query := tx.Insert(entriesTable).
		Rows(goqu.Record{
			"id":               entry.ID,
			"transaction_code": entry.Code,
			"item_id":          entry.ItemID,
			"transaction_type": entry.Kind,
			"quantity":         entry.Quantity,
			"unit_price":       entry.UnitPrice,
			"total_price":      entry.TotalPrice,
			"previous_stock":   entry.PreviousStock,
			"new_stock":        entry.NewStock,
			"reference":        entry.Reference,
			"notes":            entry.Notes,
			"created_by":       entry.CreatedBy,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&entry.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *LedgerRepository) GetEntry(id uuid.UUID) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	query := r.repository.GoquDBWrapper.
		From(entriesTable).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		return nil, fmt.Errorf("unable to select ledger entry: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &entry, nil
}

func (r *LedgerRepository) GetEntriesByItem(itemID uuid.UUID, limit, offset int) (*[]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	query := r.repository.GoquDBWrapper.
		From(entriesTable).
		Where(goqu.Ex{"item_id": itemID}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select ledger entries: %w", err)
	}

	return &entries, nil
}

func (r *LedgerRepository) GetEntriesByWarehouse(warehouseID uuid.UUID, start, end *time.Time, limit, offset int) (*[]models.LedgerEntry, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T(entriesTable).As("t")).
		Select(goqu.I("t.*")).
		Join(
			goqu.T(itemsTable).As("i"),
			goqu.On(goqu.Ex{"t.item_id": goqu.I("i.id")}),
		).
		Where(goqu.Ex{"i.warehouse_id": warehouseID})

	if start != nil {
		query = query.Where(goqu.I("t.created_at").Gte(*start))
	}
	if end != nil {
		query = query.Where(goqu.I("t.created_at").Lte(*end))
	}

	query = query.
		Order(goqu.I("t.created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))

	var entries []models.LedgerEntry
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select warehouse ledger entries: %w", err)
	}

	return &entries, nil
}

// GetSalesReport groups committed out-movements per day over the range.
func (r *LedgerRepository) GetSalesReport(warehouseID *uuid.UUID, start, end time.Time) (*models.SalesReport, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T(entriesTable).As("t")).
		Join(
			goqu.T(itemsTable).As("i"),
			goqu.On(goqu.Ex{"t.item_id": goqu.I("i.id")}),
		).
		Select(
			goqu.L("DATE(t.created_at)").As("date"),
			goqu.COUNT(goqu.I("t.id")).As("transaction_count"),
			goqu.L("COALESCE(SUM(t.quantity), 0)").As("total_quantity"),
			goqu.L("COALESCE(SUM(t.total_price), 0)").As("total_sales"),
			goqu.L("COUNT(DISTINCT t.item_id)").As("unique_items"),
		).
		Where(
			goqu.I("t.transaction_type").Eq("out"),
			goqu.I("t.created_at").Gte(start),
			goqu.I("t.created_at").Lte(end),
		).
		GroupBy(goqu.L("DATE(t.created_at)")).
		Order(goqu.L("DATE(t.created_at)").Asc())

	if warehouseID != nil {
		query = query.Where(goqu.Ex{"i.warehouse_id": *warehouseID})
	}

	var daily []models.DailySales
	if err := query.Executor().ScanStructs(&daily); err != nil {
		return nil, fmt.Errorf("unable to build sales report: %w", err)
	}

	report := models.SalesReport{
		StartDate: start,
		EndDate:   end,
		Daily:     daily,
		Summary: models.SalesSummary{
			TotalSales:        decimal.Zero,
			AverageDailySales: decimal.Zero,
		},
	}
	for _, day := range daily {
		report.Summary.TotalTransactions += day.TransactionCount
		report.Summary.TotalQuantity += day.TotalQuantity
		report.Summary.TotalSales = report.Summary.TotalSales.Add(day.TotalSales)
	}
	if len(daily) > 0 {
		report.Summary.AverageDailySales = report.Summary.TotalSales.
			Div(decimal.NewFromInt(int64(len(daily)))).
			Round(2)
	}

	return &report, nil
}

// GetStockMovement aggregates the item's daily closing stock and in/out
// volume over the trailing number of days.
func (r *LedgerRepository) GetStockMovement(itemID uuid.UUID, days int) ([]models.DailyMovement, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	query := r.repository.GoquDBWrapper.
		From(entriesTable).
		Select(
			goqu.L("DATE(created_at)").As("date"),
			// Closing stock is the new_stock of the day's last entry.
			goqu.L("(ARRAY_AGG(new_stock ORDER BY created_at DESC))[1]").As("closing_stock"),
			goqu.L("COALESCE(SUM(quantity) FILTER (WHERE transaction_type IN ('in', 'return')), 0)").As("stock_in"),
			goqu.L("COALESCE(SUM(quantity) FILTER (WHERE transaction_type IN ('out', 'transfer')), 0)").As("stock_out"),
		).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("created_at").Gte(start),
			goqu.C("created_at").Lte(end),
		).
		GroupBy(goqu.L("DATE(created_at)")).
		Order(goqu.L("DATE(created_at)").Asc())

	var movement []models.DailyMovement
	if err := query.Executor().ScanStructs(&movement); err != nil {
		return nil, fmt.Errorf("unable to build stock movement history: %w", err)
	}

	return movement, nil
}

// SignedQuantitySum returns the net ledger effect for an item, used to
// audit the quantity invariant against the cached current stock.
func (r *LedgerRepository) SignedQuantitySum(itemID uuid.UUID) (int, error) {
	var sum int64
	query := r.repository.GoquDBWrapper.
		From(entriesTable).
		Select(goqu.L("COALESCE(SUM(new_stock - previous_stock), 0)")).
		Where(goqu.Ex{"item_id": itemID})

	if _, err := query.Executor().ScanVal(&sum); err != nil {
		return 0, fmt.Errorf("unable to sum ledger quantities: %w", err)
	}

	return int(sum), nil
}

// VerifyBalance compares the item's cached stock against the signed sum
// of its ledger entries. The two must agree at all times.
func (r *LedgerRepository) VerifyBalance(itemID uuid.UUID) (ledgerSum, currentStock int, err error) {
	ledgerSum, err = r.SignedQuantitySum(itemID)
	if err != nil {
		return 0, 0, err
	}

	var stock int64
	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Select("current_stock").
		Where(goqu.Ex{"id": itemID})

	found, err := query.Executor().ScanVal(&stock)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read current stock: %w", err)
	}
	if !found {
		return 0, 0, fmt.Errorf("item %s not found", itemID)
	}

	return ledgerSum, int(stock), nil
}
