package protocol

import "fmt"

// ProtocolError represents a response that does not fit the protocol.
// It is always fatal for the session.
type ProtocolError struct {
	// Operation is the request that was being answered (optional)
	Operation string

	// Reason describes what was expected
	Reason string

	// Response is the offending line
	Response string
}

func (e *ProtocolError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Response)
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Reason, e.Response)
}

// DeviceError represents a NAK sent by the device.
type DeviceError struct {
	// Response is the full NAK line
	Response string

	// Message is the text after the NAK: marker
	Message string
}

func (e *DeviceError) Error() string {
	return e.Response
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}

// IsDeviceError returns true if the error is a DeviceError.
func IsDeviceError(err error) bool {
	_, ok := err.(*DeviceError)
	return ok
}
