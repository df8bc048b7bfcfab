package models

import (
	"github.com/google/uuid"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/shopspring/decimal"
)

// MovementRequest describes one requested stock change. Quantity is
// always the positive magnitude; for adjustments the direction field
// resolves the sign.
type MovementRequest struct {
	ItemID    uuid.UUID                    `json:"item_id" binding:"required"`
	Kind      metadata.MovementKind        `json:"transaction_type" binding:"required"`
	Quantity  int                          `json:"quantity" binding:"required"`
	Direction metadata.AdjustmentDirection `json:"direction,omitempty"`
	UnitPrice *decimal.Decimal             `json:"unit_price,omitempty"`
	Reference string                       `json:"reference,omitempty"`
	Notes     string                       `json:"notes,omitempty"`
	ActorID   uuid.UUID                    `json:"-"`
}

// TransferRequest moves quantity between two items. Each leg is its own
// atomic mutation; the destination leg references the source entry code.
type TransferRequest struct {
	SourceItemID      uuid.UUID        `json:"source_item_id" binding:"required"`
	DestinationItemID uuid.UUID        `json:"destination_item_id" binding:"required"`
	Quantity          int              `json:"quantity" binding:"required"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	ActorID           uuid.UUID        `json:"-"`
}
