package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("missing field %q", "name"), http.StatusBadRequest},
		{"not found", NotFound("order %d not found", 7), http.StatusNotFound},
		{"conflict", Conflict("category already exists"), http.StatusConflict},
		{"referential", ReferentialIntegrity("supplier is linked to orders"), http.StatusConflict},
		{"business rule", BusinessRule("customer not registered for event"), http.StatusUnprocessableEntity},
		{"transaction", Transaction(errors.New("insert failed"), "failed to create purchase order"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := BusinessRule("balance cannot go negative")
	wrapped := fmt.Errorf("apply pack change: %w", inner)

	if KindOf(wrapped) != KindBusinessRule {
		t.Errorf("KindOf(wrapped) = %v, want KindBusinessRule", KindOf(wrapped))
	}
	if HTTPStatus(wrapped) != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus(wrapped) = %d, want 422", HTTPStatus(wrapped))
	}
}

func TestTransactionUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := Transaction(cause, "failed to create purchase order")

	if !errors.Is(err, cause) {
		t.Error("Transaction error should unwrap to its cause")
	}
	if err.Error() != "failed to create purchase order: duplicate key value" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
