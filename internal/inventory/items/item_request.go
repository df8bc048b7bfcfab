package items

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Barcode      *string         `json:"barcode,omitempty"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	WarehouseID  *uuid.UUID      `json:"warehouse_id,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	InitialStock int             `json:"initial_stock,omitempty" binding:"omitempty,gte=0"`
	MinStock     int             `json:"min_stock,omitempty" binding:"omitempty,gte=0"`
	MaxStock     *int            `json:"max_stock,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
}

// PatchItemRequest covers the non-quantity fields. The current stock of
// an item can only change through the ledger service.
type PatchItemRequest struct {
	ID          uuid.UUID        `json:"-" uri:"id" binding:"required"`
	Barcode     *string          `json:"barcode,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	MinStock    *int             `json:"min_stock,omitempty"`
	MaxStock    *int             `json:"max_stock,omitempty"`
	BuyPrice    *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice   *decimal.Decimal `json:"sell_price,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type ListItemsQuery struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	CategoryID  *uuid.UUID `form:"category_id"`
	MinStock    *int       `form:"min_stock"`
	MaxStock    *int       `form:"max_stock"`
	Search      string     `form:"search"`
	IncludeAll  bool       `form:"include_inactive"`
	Limit       int        `form:"limit,default=100" binding:"omitempty,gte=1,lte=1000"`
	Offset      int        `form:"offset,default=0" binding:"omitempty,gte=0"`
}
