package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/shopspring/decimal"
)

// LedgerEntry is one immutable stock movement. Rows are insert-only:
// there is no update or delete path anywhere in the codebase, and the
// quantity magnitude is always positive (the kind carries the sign).
type LedgerEntry struct {
	ID            uuid.UUID             `json:"id" db:"id"`
	Code          string                `json:"transaction_code" db:"transaction_code"`
	ItemID        uuid.UUID             `json:"item_id" db:"item_id"`
	Kind          metadata.MovementKind `json:"transaction_type" db:"transaction_type"`
	Quantity      int                   `json:"quantity" db:"quantity"`
	UnitPrice     *decimal.Decimal      `json:"unit_price,omitempty" db:"unit_price"`
	TotalPrice    *decimal.Decimal      `json:"total_price,omitempty" db:"total_price"`
	PreviousStock int                   `json:"previous_stock" db:"previous_stock"`
	NewStock      int                   `json:"new_stock" db:"new_stock"`
	Reference     string                `json:"reference,omitempty" db:"reference"`
	Notes         string                `json:"notes,omitempty" db:"notes"`
	CreatedBy     uuid.UUID             `json:"created_by" db:"created_by"`
	CreatedAt     time.Time             `json:"created_at" db:"created_at"`
}

func (e *LedgerEntry) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   e.ID.String(),
		ResourceType: "ledger_entry",
	}
}

// DailySales is one bucket of the grouped sales report.
type DailySales struct {
	Date             time.Time       `json:"date" db:"date"`
	TransactionCount int             `json:"transaction_count" db:"transaction_count"`
	TotalQuantity    int             `json:"total_quantity" db:"total_quantity"`
	TotalSales       decimal.Decimal `json:"total_sales" db:"total_sales"`
	UniqueItems      int             `json:"unique_items" db:"unique_items"`
}

// SalesReport covers out-movements over a date range.
type SalesReport struct {
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Daily     []DailySales `json:"daily_sales"`
	Summary   SalesSummary `json:"summary"`
}

type SalesSummary struct {
	TotalTransactions int             `json:"total_transactions"`
	TotalQuantity     int             `json:"total_quantity"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	AverageDailySales decimal.Decimal `json:"average_daily_sales"`
}

// DailyMovement is one bucket of the per-item stock movement history.
type DailyMovement struct {
	Date         time.Time `json:"date" db:"date"`
	ClosingStock int       `json:"closing_stock" db:"closing_stock"`
	StockIn      int       `json:"stock_in" db:"stock_in"`
	StockOut     int       `json:"stock_out" db:"stock_out"`
}
