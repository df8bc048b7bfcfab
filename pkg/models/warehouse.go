package models

import (
	"time"

	"github.com/google/uuid"
)

type Warehouse struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Code      string     `json:"code" db:"code"`
	Name      string     `json:"name" db:"name"`
	Location  *string    `json:"location,omitempty" db:"location"`
	Address   *string    `json:"address,omitempty" db:"address"`
	Phone     *string    `json:"phone,omitempty" db:"phone"`
	Email     *string    `json:"email,omitempty" db:"email"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

func (w *Warehouse) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   w.ID.String(),
		ResourceType: "warehouse",
	}
}
