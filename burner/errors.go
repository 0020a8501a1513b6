package burner

import (
	"fmt"
)

// ValidationError indicates that a page acknowledgement echoed a different
// address or size than the record that was sent. It means the transport
// corrupted the request or the device lost sync; it is never retried.
type ValidationError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *ValidationError) Error() string {
	if e.Field == "address" {
		return fmt.Sprintf("expected address 0x%x, got 0x%x", e.Expected, e.Actual)
	}
	return fmt.Sprintf("expected %d bytes, got %d", e.Expected, e.Actual)
}

// DataIntegrityError indicates that the verify pass found a page that still
// differs from the record after the write pass, so a write did not take.
type DataIntegrityError struct {
	Address uint16
	Size    int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: page at 0x%04X (%d bytes) changed during verification", e.Address, e.Size)
}

// ResetError indicates that the device rebooted outside the handshake. The
// device content is unknown and the whole plan must be rerun after a fresh
// handshake.
type ResetError struct {
	Operation string
}

func (e *ResetError) Error() string {
	return fmt.Sprintf("device reset during %s", e.Operation)
}

// TooManyResetsError indicates that the handshake saw more RESET responses than
// allowed by WithMaxResets.
type TooManyResetsError struct {
	Resets int
}

func (e *TooManyResetsError) Error() string {
	return fmt.Sprintf("device reset %d times during handshake", e.Resets)
}

// StateError indicates that an operation was called in a session state that
// does not allow it.
type StateError struct {
	Operation string
	State     State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Operation, e.State)
}
