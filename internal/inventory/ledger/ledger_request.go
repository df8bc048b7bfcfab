package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StockMovementRequest struct {
	ItemID          uuid.UUID        `json:"item_id" binding:"required"`
	TransactionType string           `json:"transaction_type,omitempty"`
	Quantity        int              `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

type AdjustmentRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Direction string    `json:"direction" binding:"required"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type TransferBody struct {
	SourceItemID      uuid.UUID        `json:"source_item_id" binding:"required"`
	DestinationItemID uuid.UUID        `json:"destination_item_id" binding:"required"`
	Quantity          int              `json:"quantity" binding:"required"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

type ListEntriesQuery struct {
	ItemID      *uuid.UUID `form:"item_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	StartDate   *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate     *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit       int        `form:"limit,default=100" binding:"omitempty,gte=1,lte=1000"`
	Offset      int        `form:"offset,default=0" binding:"omitempty,gte=0"`
}
