package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rakuszz0/Inventory/pkg/metadata"
)

// StockAlert is a threshold notification derived from an item snapshot.
// Rows are historical: only the read flag and reader fields ever change.
type StockAlert struct {
	ID           uuid.UUID          `json:"id" db:"id"`
	ItemID       uuid.UUID          `json:"item_id" db:"item_id"`
	Kind         metadata.AlertKind `json:"alert_type" db:"alert_type"`
	CurrentStock int                `json:"current_stock" db:"current_stock"`
	Threshold    int                `json:"threshold" db:"threshold"`
	Message      string             `json:"message" db:"message"`
	IsRead       bool               `json:"is_read" db:"is_read"`
	ReadBy       *uuid.UUID         `json:"read_by,omitempty" db:"read_by"`
	ReadAt       *time.Time         `json:"read_at,omitempty" db:"read_at"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}

func (a *StockAlert) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID.String(),
		ResourceType: "stock_alert",
	}
}
