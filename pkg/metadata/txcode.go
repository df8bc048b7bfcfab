package metadata

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	txCodePrefix      = "TRX"
	txCodeSuffixBytes = 4
)

// NewTransactionCode builds a human-readable ledger code of the form
// TRX-20240131-9F1C03AB. The suffix entropy makes collisions negligible;
// the unique constraint on the column is the backstop.
func NewTransactionCode(now time.Time) string {
	suffix := make([]byte, txCodeSuffixBytes)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("read random suffix: %v", err))
	}

	return fmt.Sprintf(
		"%s-%s-%s",
		txCodePrefix,
		now.UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(suffix)),
	)
}
