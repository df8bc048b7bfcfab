package models

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Fullname     string     `json:"fullname" db:"fullname"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	WarehouseID  *uuid.UUID `json:"warehouse_id,omitempty" db:"warehouse_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
}

type CreateUserRequest struct {
	Username    string     `json:"username" binding:"required"`
	Password    string     `json:"password" binding:"required,min=6"`
	Fullname    string     `json:"fullname" binding:"required"`
	Role        string     `json:"role" binding:"required,oneof=staff manager admin"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
}

type UpdateUserRequest struct {
	Password    *string    `json:"password,omitempty"`
	Fullname    *string    `json:"fullname,omitempty"`
	Role        *string    `json:"role,omitempty"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// UserChanges carries only the columns a patch should touch.
type UserChanges struct {
	PasswordHash *string
	Fullname     *string
	Role         *string
	WarehouseID  *uuid.UUID
	IsActive     *bool
}

func (c *UserChanges) HasChanges() bool {
	return c.PasswordHash != nil || c.Fullname != nil || c.Role != nil ||
		c.WarehouseID != nil || c.IsActive != nil
}
