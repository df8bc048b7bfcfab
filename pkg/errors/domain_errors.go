package custom_error

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemNotFoundError covers both missing and deactivated items: a
// deactivated item is not a valid mutation target.
type ItemNotFoundError struct {
	ItemID uuid.UUID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found or inactive", e.ItemID)
}

type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be a positive integer, got %d", e.Quantity)
}

type InsufficientStockError struct {
	ItemID    uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: available %d, requested %d", e.ItemID, e.Available, e.Requested)
}

// DuplicateCodeError is fatal: the bounded retry on ledger code
// collisions has been exhausted.
type DuplicateCodeError struct {
	Code     string
	Attempts int
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("ledger code collision persisted after %d attempts, last code %s", e.Attempts, e.Code)
}

type AlertNotFoundError struct {
	AlertID uuid.UUID
}

func (e *AlertNotFoundError) Error() string {
	return fmt.Sprintf("stock alert %s not found", e.AlertID)
}
