package protocol

import (
	"fmt"
	"testing"
)

func TestProtocolError(t *testing.T) {
	tests := []struct {
		name string
		err  *ProtocolError
		want string
	}{
		{
			name: "without operation",
			err:  &ProtocolError{Reason: "unexpected response", Response: "foo"},
			want: "unexpected response: foo",
		},
		{
			name: "with operation",
			err:  &ProtocolError{Operation: "begin", Reason: "expected ACK:BEGIN", Response: "ACK:END"},
			want: "begin: expected ACK:BEGIN: ACK:END",
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

func TestDeviceError(t *testing.T) {
	err := &DeviceError{Response: "NAK:bad record", Message: "bad record"}
	if err.Error() != "NAK:bad record" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsDeviceError(err) {
		t.Error("IsDeviceError = false")
	}
	if IsDeviceError(fmt.Errorf("other")) || IsProtocolError(err) {
		t.Error("type checks matched the wrong error")
	}
}
