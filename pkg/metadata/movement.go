package metadata

import (
	"fmt"
	"strings"
)

// MovementKind is the category of a stock change. The stored quantity is
// always positive; the kind decides whether it is added or subtracted.
type MovementKind string

const (
	MovementIn         MovementKind = "in"
	MovementOut        MovementKind = "out"
	MovementAdjustment MovementKind = "adjustment"
	MovementReturn     MovementKind = "return"
	MovementTransfer   MovementKind = "transfer"
)

func NewMovementKind(value string) (MovementKind, error) {
	kind := MovementKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return "", fmt.Errorf(
			"invalid movement kind %q, valid kinds are: %s, %s, %s, %s, %s",
			value, MovementIn, MovementOut, MovementAdjustment, MovementReturn, MovementTransfer,
		)
	}
	return kind, nil
}

func (k MovementKind) IsValid() bool {
	switch k {
	case MovementIn, MovementOut, MovementAdjustment, MovementReturn, MovementTransfer:
		return true
	default:
		return false
	}
}

// Additive reports whether the kind increases stock on its own. Adjustment
// carries a caller-supplied direction and transfer always decrements the
// source item, so neither is additive here.
func (k MovementKind) Additive() bool {
	return k == MovementIn || k == MovementReturn
}

func (k MovementKind) String() string {
	return string(k)
}

// AdjustmentDirection resolves the sign of an adjustment movement.
type AdjustmentDirection string

const (
	AdjustIncrease AdjustmentDirection = "increase"
	AdjustDecrease AdjustmentDirection = "decrease"
)

func NewAdjustmentDirection(value string) (AdjustmentDirection, error) {
	dir := AdjustmentDirection(strings.ToLower(strings.TrimSpace(value)))
	switch dir {
	case AdjustIncrease, AdjustDecrease:
		return dir, nil
	default:
		return "", fmt.Errorf("invalid adjustment direction %q, valid directions are: %s, %s", value, AdjustIncrease, AdjustDecrease)
	}
}
