package protocol

import (
	"context"
	"strconv"
	"strings"
)

// Kind classifies a line received from the device.
type Kind int

const (
	// KindMalformed is any line the protocol does not define
	KindMalformed Kind = iota

	// KindAck is a terminal success response
	KindAck

	// KindNak is a device-reported failure
	KindNak

	// KindInfo is an informational MSG line
	KindInfo

	// KindReset reports that the device has just rebooted
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindAck:
		return "ack"
	case KindNak:
		return "nak"
	case KindInfo:
		return "info"
	case KindReset:
		return "reset"
	default:
		return "malformed"
	}
}

// PageAck is the typed form of ACK:<mode>:<hex address>:<decimal size>.
type PageAck struct {
	// Mode is what the device did: ModeWrite if the page changed,
	// ModeVerify if it already matched
	Mode Mode

	// Address is the echoed page record address
	Address uint16

	// Size is the echoed number of data bytes
	Size int
}

// Response is one classified line from the device.
type Response struct {
	// Kind is the line classification
	Kind Kind

	// Text is the full line with trailing whitespace removed
	Text string

	// Body is the text following the ACK:, NAK: or MSG: marker
	Body string

	// Page is set when Text is a well-formed page acknowledgement
	Page *PageAck
}

// IsAck reports whether r is exactly "ACK:<cmd>".
func (r Response) IsAck(cmd string) bool {
	return r.Kind == KindAck && r.Text == AckPrefix+cmd
}

// Classify turns one line into a Response. Markers are matched in priority
// order: MSG:, ACK: and NAK: anywhere in the line, RESET only as the whole
// line.
func Classify(line string) Response {
	resp := Response{Text: line}

	switch {
	case strings.Contains(line, MsgPrefix):
		resp.Kind = KindInfo
		resp.Body = after(line, MsgPrefix)
	case strings.Contains(line, AckPrefix):
		resp.Kind = KindAck
		resp.Body = after(line, AckPrefix)
		if strings.HasPrefix(line, AckPrefix) {
			if page, ok := parsePageAck(resp.Body); ok {
				resp.Page = page
			}
		}
	case strings.Contains(line, NakPrefix):
		resp.Kind = KindNak
		resp.Body = after(line, NakPrefix)
	case line == ResetLine:
		resp.Kind = KindReset
	default:
		resp.Kind = KindMalformed
	}

	return resp
}

// ReadResponse reads lines until a terminal response arrives.
//
// Blank lines are skipped. Every other line is passed to observe (which may be
// nil) before it is acted upon, so callers can trace traffic and surface MSG
// lines. The returned error is:
//   - nil for KindAck and KindReset; the caller decides whether a reset is
//     recoverable
//   - *DeviceError for KindNak
//   - *ProtocolError for KindMalformed
//   - the transport or context error if reading failed
func ReadResponse(ctx context.Context, lines *LineReader, observe func(Response)) (Response, error) {
	for {
		line, err := lines.ReadLine(ctx)
		if err != nil {
			return Response{}, err
		}
		if line == "" {
			continue
		}

		resp := Classify(line)
		if observe != nil {
			observe(resp)
		}

		switch resp.Kind {
		case KindInfo:
			continue
		case KindAck, KindReset:
			return resp, nil
		case KindNak:
			return resp, &DeviceError{Response: resp.Text, Message: resp.Body}
		default:
			return resp, &ProtocolError{Reason: "unexpected response", Response: resp.Text}
		}
	}
}

// parsePageAck parses "<mode>:<hex address>:<decimal size>".
func parsePageAck(body string) (*PageAck, bool) {
	fields := strings.Split(body, ":")
	if len(fields) != PageAckFields-1 {
		return nil, false
	}

	if len(fields[0]) != 1 || !Mode(fields[0][0]).Valid() {
		return nil, false
	}

	if !isUpperHex(fields[1]) {
		return nil, false
	}
	address, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		return nil, false
	}

	if !isDecimal(fields[2]) {
		return nil, false
	}
	size, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, false
	}

	return &PageAck{
		Mode:    Mode(fields[0][0]),
		Address: uint16(address),
		Size:    size,
	}, true
}

func after(s, marker string) string {
	_, rest, _ := strings.Cut(s, marker)
	return rest
}

func isUpperHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
