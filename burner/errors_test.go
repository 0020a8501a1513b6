package burner

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "size",
			err:  &ValidationError{Field: "size", Expected: 16, Actual: 15},
			want: "expected 16 bytes, got 15",
		},
		{
			name: "address",
			err:  &ValidationError{Field: "address", Expected: 0x100, Actual: 0x140},
			want: "expected address 0x100, got 0x140",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataIntegrityError(t *testing.T) {
	err := &DataIntegrityError{Address: 0x7FC0, Size: 64}

	errMsg := err.Error()

	if !strings.Contains(errMsg, "0x7FC0") {
		t.Errorf("error message should contain address, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "64 bytes") {
		t.Errorf("error message should contain size, got: %s", errMsg)
	}
}

func TestResetError(t *testing.T) {
	err := &ResetError{Operation: "page write"}

	if err.Error() != "device reset during page write" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestStateError(t *testing.T) {
	err := &StateError{Operation: "verify pass", State: StateBegun}

	if err.Error() != "verify pass not allowed in state begun" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestErrorsUnwrapThroughContext(t *testing.T) {
	wrapped := fmt.Errorf("verify: page 3: %w", &DataIntegrityError{Address: 0x80, Size: 8})

	var target *DataIntegrityError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As failed to find DataIntegrityError")
	}
	if target.Address != 0x80 {
		t.Errorf("Address = 0x%X, want 0x80", target.Address)
	}
}
