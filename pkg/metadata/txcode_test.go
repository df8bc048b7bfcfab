package metadata

import (
	"regexp"
	"testing"
	"time"
)

func TestNewTransactionCode(t *testing.T) {
	now := time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)

	code := NewTransactionCode(now)

	matched, err := regexp.MatchString(`^TRX-20240131-[0-9A-F]{8}$`, code)
	if err != nil {
		t.Fatalf("regexp error: %v", err)
	}
	if !matched {
		t.Errorf("NewTransactionCode() = %q, does not match expected format", code)
	}
}

func TestNewTransactionCodeUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// Local date is already Feb 1st, UTC date still Jan 31st.
	now := time.Date(2024, time.February, 1, 3, 0, 0, 0, loc)

	code := NewTransactionCode(now)

	if code[:12] != "TRX-20240131" {
		t.Errorf("NewTransactionCode() = %q, want UTC date prefix TRX-20240131", code)
	}
}

func TestNewTransactionCodeSuffixVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		code := NewTransactionCode(now)
		if seen[code] {
			t.Fatalf("duplicate code generated: %s", code)
		}
		seen[code] = true
	}
}
