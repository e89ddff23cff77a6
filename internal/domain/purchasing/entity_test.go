package purchasing_test

import (
	"testing"

	"github.com/your-org/cardshop-backend/internal/domain/purchasing"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name      string
		totalCost float64
		paid      float64
		want      purchasing.PaymentStatus
	}{
		{"nothing paid", 100, 0, purchasing.PaymentStatusPending},
		{"partial payment", 100, 40, purchasing.PaymentStatusPartial},
		{"exact payment", 100, 100, purchasing.PaymentStatusFullyPaid},
		{"overpayment", 100, 120, purchasing.PaymentStatusFullyPaid},
		{"fraction of a cent short stays partial", 100, 99.999, purchasing.PaymentStatusPartial},
		{"one cent short stays partial", 100, 99.99, purchasing.PaymentStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := purchasing.DerivePaymentStatus(tt.totalCost, tt.paid); got != tt.want {
				t.Errorf("DerivePaymentStatus(%v, %v) = %q, want %q", tt.totalCost, tt.paid, got, tt.want)
			}
		})
	}
}
