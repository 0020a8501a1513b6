package protocol

import "fmt"

// BuildCommand constructs a session command line such as "BEGIN\n".
func BuildCommand(cmd string) []byte {
	line := make([]byte, 0, len(cmd)+1)
	line = append(line, cmd...)
	return append(line, LineTerminator)
}

// BuildPageCommand constructs a page request: the mode character followed by
// the raw S1 record text.
//
// Line structure:
//
//	[MODE][S1 RECORD]\n
//
// The record is sent exactly as read from the input file.
func BuildPageCommand(mode Mode, record string) ([]byte, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid page mode 0x%02X", byte(mode))
	}
	if record == "" {
		return nil, fmt.Errorf("record cannot be empty")
	}

	line := make([]byte, 0, len(record)+2)
	line = append(line, byte(mode))
	line = append(line, record...)
	return append(line, LineTerminator), nil
}
