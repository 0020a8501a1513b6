package srec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeRecord builds an uppercase S1 record for data placed at address.
// The record is not checked against the page layout; use Paginate to produce
// records the device accepts.
func EncodeRecord(address uint16, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("record must carry at least one data byte")
	}
	if len(data)+RecordOverhead > 0xFF {
		return "", fmt.Errorf("record data too long: got %d bytes, maximum is %d", len(data), 0xFF-RecordOverhead)
	}

	body := make([]byte, 0, 3+len(data)+1)
	body = append(body, byte(len(data)+RecordOverhead), byte(address>>8), byte(address))
	body = append(body, data...)
	body = append(body, calculateChecksum(body))

	return RecordType + strings.ToUpper(hex.EncodeToString(body)), nil
}

// Paginate splits an image loaded at base into page-aligned S1 records of at
// most chunk data bytes each. No record crosses a page boundary.
func Paginate(base uint32, data []byte, chunk int) ([]string, error) {
	if chunk < 1 || chunk > MaxRecordSize {
		return nil, fmt.Errorf("chunk size %d must be between 1 and %d", chunk, MaxRecordSize)
	}
	if uint64(base)+uint64(len(data)) > MemorySize {
		return nil, fmt.Errorf("image 0x%X+%d does not fit in %d bytes", base, len(data), MemorySize)
	}

	lines := make([]string, 0, len(data)/chunk+2)
	for offset := 0; offset < len(data); {
		address := base + uint32(offset)
		pageEnd := (address | (PageSize - 1)) + 1

		n := chunk
		if address+uint32(n) > pageEnd {
			n = int(pageEnd - address)
		}
		if offset+n > len(data) {
			n = len(data) - offset
		}

		line, err := EncodeRecord(uint16(address), data[offset:offset+n])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		offset += n
	}

	return lines, nil
}

// FromImage builds a ROM directly from a memory image.
func FromImage(base uint32, data []byte, chunk int) (*ROM, error) {
	lines, err := Paginate(base, data, chunk)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// VerifyChecksum checks the trailing checksum byte of an S1 record: the sum of
// every byte from the byte count through the checksum must be 0xFF.
//
// The programmer never calls this; the device performs the same check when it
// receives a record.
func VerifyChecksum(raw string) error {
	if !strings.HasPrefix(raw, RecordType) {
		return fmt.Errorf("not an S1 record")
	}

	body, err := hex.DecodeString(raw[len(RecordType):])
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}
	if len(body) < 4 {
		return fmt.Errorf("record too short: got %d bytes, minimum is 4", len(body))
	}

	var sum byte
	for _, b := range body {
		sum += b
	}
	if sum != 0xFF {
		return fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X",
			body[len(body)-1], calculateChecksum(body[:len(body)-1]))
	}
	return nil
}

// calculateChecksum computes the S-record checksum: the ones' complement of the
// low byte of the sum of count, address and data bytes.
func calculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum
}
