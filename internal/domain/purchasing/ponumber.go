// internal/domain/purchasing/ponumber.go
package purchasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NumberGenerator produces PO numbers when a caller does not supply one.
type NumberGenerator interface {
	Next(now time.Time) string
}

// UUIDNumberGenerator is the default strategy: a human-readable date
// prefix followed by a random suffix. Format: PO-YYYYMMDD-XXXXXXXX.
type UUIDNumberGenerator struct{}

// Next returns a new PO number.
func (UUIDNumberGenerator) Next(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), suffix)
}

// TimestampNumberGenerator reproduces the legacy PO-<unix millis> format.
// Two calls within the same millisecond collide; kept only for shops that
// need numbers to sort chronologically.
type TimestampNumberGenerator struct{}

// Next returns a new PO number.
func (TimestampNumberGenerator) Next(now time.Time) string {
	return fmt.Sprintf("PO-%d", now.UnixMilli())
}
