package metadata

import (
	"testing"
)

func TestNewMovementKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MovementKind
		wantErr bool
	}{
		{"valid in", "in", MovementIn, false},
		{"valid out", "out", MovementOut, false},
		{"valid uppercase RETURN", "RETURN", MovementReturn, false},
		{"valid adjustment with spaces", "  adjustment ", MovementAdjustment, false},
		{"valid transfer", "transfer", MovementTransfer, false},
		{"invalid unknown", "restock", "", true},
		{"invalid empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMovementKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMovementKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewMovementKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovementKindAdditive(t *testing.T) {
	tests := []struct {
		name     string
		kind     MovementKind
		expected bool
	}{
		{"in adds stock", MovementIn, true},
		{"return adds stock", MovementReturn, true},
		{"out removes stock", MovementOut, false},
		{"transfer removes stock from source", MovementTransfer, false},
		{"adjustment direction is caller supplied", MovementAdjustment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Additive(); got != tt.expected {
				t.Errorf("Additive() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewAdjustmentDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid increase", "increase", false},
		{"valid uppercase DECREASE", "DECREASE", false},
		{"invalid up", "up", true},
		{"invalid empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdjustmentDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewAdjustmentDirection() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
