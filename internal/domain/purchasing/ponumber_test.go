package purchasing_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/your-org/cardshop-backend/internal/domain/purchasing"
)

func TestUUIDNumberGenerator_Format(t *testing.T) {
	gen := purchasing.UUIDNumberGenerator{}
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	number := gen.Next(now)

	if !strings.HasPrefix(number, "PO-20260815-") {
		t.Errorf("expected prefix PO-20260815-, got %q", number)
	}
	if len(number) != len("PO-20260815-")+8 {
		t.Errorf("expected 8-char suffix, got %q", number)
	}
	suffix := strings.TrimPrefix(number, "PO-20260815-")
	if suffix != strings.ToUpper(suffix) {
		t.Errorf("expected uppercase suffix, got %q", suffix)
	}
}

func TestUUIDNumberGenerator_Uniqueness(t *testing.T) {
	gen := purchasing.UUIDNumberGenerator{}
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := gen.Next(now)
		if seen[number] {
			t.Fatalf("duplicate PO number generated: %q", number)
		}
		seen[number] = true
	}
}

func TestTimestampNumberGenerator_Format(t *testing.T) {
	gen := purchasing.TimestampNumberGenerator{}
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

	want := fmt.Sprintf("PO-%d", now.UnixMilli())
	if got := gen.Next(now); got != want {
		t.Errorf("Next() = %q, want %q", got, want)
	}
}
