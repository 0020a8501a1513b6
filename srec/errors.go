package srec

import "fmt"

// FormatError indicates that an input line is not a well-formed S1 record.
type FormatError struct {
	// Line is the 1-based line number in the input
	Line int

	// Reason describes what is wrong with the line
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d %s", e.Line, e.Reason)
}

// RangeError indicates that a well-formed S1 record does not fit the device:
// its address, size or page placement is out of bounds.
type RangeError struct {
	// Line is the 1-based line number in the input
	Line int

	// Reason describes which bound was violated
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line %d %s", e.Line, e.Reason)
}
