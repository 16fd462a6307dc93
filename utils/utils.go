package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID returns a fresh gateway reference in the
// TXN-XXXXXXXX format (8 uppercase hex chars).
func GenerateTransactionID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(id[:8])
}
