package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is the current snapshot of one tracked item. The quantity
// field is only ever changed through the ledger service so that it stays
// equal to the signed sum of the item's ledger entries.
type StockItem struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	SKU           string           `json:"sku" db:"sku"`
	Barcode       *string          `json:"barcode,omitempty" db:"barcode"`
	Name          string           `json:"name" db:"name"`
	Description   string           `json:"description" db:"description"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty" db:"category_id"`
	WarehouseID   *uuid.UUID       `json:"warehouse_id,omitempty" db:"warehouse_id"`
	Unit          string           `json:"unit" db:"unit"`
	CurrentStock  int              `json:"current_stock" db:"current_stock"`
	MinStock      int              `json:"min_stock" db:"min_stock"`
	MaxStock      *int             `json:"max_stock,omitempty" db:"max_stock"`
	BuyPrice      decimal.Decimal  `json:"buy_price" db:"buy_price"`
	SellPrice     decimal.Decimal  `json:"sell_price" db:"sell_price"`
	LastBuyPrice  *decimal.Decimal `json:"last_buy_price,omitempty" db:"last_buy_price"`
	LastSellPrice *decimal.Decimal `json:"last_sell_price,omitempty" db:"last_sell_price"`
	IsActive      bool             `json:"is_active" db:"is_active"`
	CreatedBy     *uuid.UUID       `json:"created_by,omitempty" db:"created_by"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

// StockStatus classifies the snapshot against its thresholds. Precedence
// matches the alert engine: out of stock beats low stock beats over stock.
func (i *StockItem) StockStatus() string {
	switch {
	case i.CurrentStock == 0:
		return "out_of_stock"
	case i.CurrentStock <= i.MinStock:
		return "low_stock"
	case i.MaxStock != nil && i.CurrentStock >= *i.MaxStock:
		return "over_stock"
	default:
		return "normal"
	}
}

func (i *StockItem) TotalValue() decimal.Decimal {
	return i.BuyPrice.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

func (i *StockItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID.String(),
		ResourceType: "item",
	}
}

// InventorySummary aggregates item rows for the reporting surface.
type InventorySummary struct {
	TotalItems      int               `json:"total_items" db:"total_items"`
	TotalStock      int               `json:"total_stock" db:"total_stock"`
	TotalValue      decimal.Decimal   `json:"total_value" db:"total_value"`
	OutOfStockItems int               `json:"out_of_stock_items" db:"out_of_stock_items"`
	LowStockItems   int               `json:"low_stock_items" db:"low_stock_items"`
	Categories      []CategorySummary `json:"categories_summary"`
}

type CategorySummary struct {
	Name       string          `json:"name" db:"name"`
	ItemCount  int             `json:"item_count" db:"item_count"`
	TotalStock int             `json:"total_stock" db:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value" db:"total_value"`
}
