package models

import (
	"time"

	"github.com/google/uuid"
)

// Category carries its parent as a plain foreign key. Tree traversal is
// done with explicit queries, never through loaded back-references.
type Category struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" binding:"required"`
	Description *string    `json:"description,omitempty" db:"description"`
	Slug        *string    `json:"slug,omitempty" db:"slug"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	SortOrder   int        `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

func (c *Category) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID.String(),
		ResourceType: "category",
	}
}
