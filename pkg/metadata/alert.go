package metadata

import "fmt"

type AlertKind string

const (
	AlertLowStock   AlertKind = "low_stock"
	AlertOutOfStock AlertKind = "out_of_stock"
	AlertOverStock  AlertKind = "over_stock"
)

func NewAlertKind(value string) (AlertKind, error) {
	kind := AlertKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid alert kind: %s", value)
	}
	return kind, nil
}

func (k AlertKind) IsValid() bool {
	switch k {
	case AlertLowStock, AlertOutOfStock, AlertOverStock:
		return true
	default:
		return false
	}
}

func (k AlertKind) String() string {
	return string(k)
}
