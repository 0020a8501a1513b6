package protocol

// Session commands sent by the host.
const (
	// CmdBegin opens a programming session
	CmdBegin = "BEGIN"

	// CmdErase erases the whole device
	CmdErase = "ERASE"

	// CmdEnd closes a programming session
	CmdEnd = "END"
)

// Response markers sent by the device.
const (
	// AckPrefix marks a successful terminal response
	AckPrefix = "ACK:"

	// NakPrefix marks a device-reported failure
	NakPrefix = "NAK:"

	// MsgPrefix marks an informational line
	MsgPrefix = "MSG:"

	// ResetLine is sent by the firmware when it has just booted
	ResetLine = "RESET"
)

// LineTerminator ends every message in both directions.
const LineTerminator = '\n'

// PageAckFields is the number of ':' separated fields in a page ack:
// ACK, mode, address, size.
const PageAckFields = 4

// DefaultReadBufferSize is the size of each read from the transport.
const DefaultReadBufferSize = 256

// Mode selects what the device does with a page record.
type Mode byte

const (
	// ModeWrite writes the page if its content differs
	ModeWrite Mode = 'W'

	// ModeVerify compares the page without writing
	ModeVerify Mode = 'V'
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeWrite || m == ModeVerify
}

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeVerify:
		return "verify"
	default:
		return "unknown"
	}
}
