package srec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Constants for S1 record parsing and the device memory layout.
const (
	// RecordType is the prefix of every accepted record
	RecordType = "S1"

	// MinimumLineLength is the shortest acceptable record in characters:
	// type(2) + byte count(2) + address(4) + checksum(2)
	MinimumLineLength = 10

	// RecordOverhead is the number of bytes counted by the byte count field that
	// are not data: address(2) + checksum(1)
	RecordOverhead = 3

	// MemorySize is the size of the device address space (32 KiB)
	MemorySize = 32 * 1024

	// PageBits is log2 of the page size
	PageBits = 6

	// PageSize is the device page size in bytes
	PageSize = 1 << PageBits

	// MaxRecordSize is the largest number of data bytes in a record
	MaxRecordSize = PageSize

	// DefaultRecordCapacity is the initial capacity for the records slice,
	// enough for a full device written one page per record
	DefaultRecordCapacity = MemorySize / PageSize
)

// Parse parses an S1 record file from the given path.
//
// Example:
//
//	rom, err := srec.Parse("monitor.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses S1 records from any io.Reader, one record per line.
// The first invalid line aborts the parse.
func ParseReader(r io.Reader) (*ROM, error) {
	scanner := bufio.NewScanner(r)
	rom := &ROM{records: make([]Record, 0, DefaultRecordCapacity)}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		rec, err := ParseLine(lineNum, scanner.Text())
		if err != nil {
			return nil, err
		}
		rom.add(rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return rom, nil
}

// ParseLines parses records already split into lines. Line numbers in errors
// are 1-based indexes into lines.
func ParseLines(lines []string) (*ROM, error) {
	rom := &ROM{records: make([]Record, 0, len(lines))}
	for i, line := range lines {
		rec, err := ParseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		rom.add(rec)
	}
	return rom, nil
}

// ParseLine validates a single line and decodes it into a Record.
// Trailing whitespace is removed first; the remaining text is stored unchanged.
//
// Checks run in order and the first failure is returned:
//  1. the line starts with "S1"
//  2. the line is at least MinimumLineLength characters
//  3. the length matches the declared byte count
//  4. the address is inside the 32 KiB device
//  5. the data size is between 1 and 64 bytes
//  6. the record does not cross a page boundary
func ParseLine(lineNum int, line string) (Record, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	if !strings.HasPrefix(line, RecordType) {
		return Record{}, &FormatError{Line: lineNum, Reason: "doesn't look like an S1 record"}
	}

	if len(line) < MinimumLineLength {
		return Record{}, &FormatError{
			Line:   lineNum,
			Reason: fmt.Sprintf("is too short (%d chars)", len(line)),
		}
	}

	byteCount, err := strconv.ParseUint(line[2:4], 16, 8)
	if err != nil {
		return Record{}, &FormatError{
			Line:   lineNum,
			Reason: fmt.Sprintf("has invalid byte count %q", line[2:4]),
		}
	}

	if len(line) != (int(byteCount)+2)*2 {
		return Record{}, &FormatError{
			Line:   lineNum,
			Reason: fmt.Sprintf("length doesn't match byte count len=%d bc=%d", len(line), byteCount),
		}
	}

	address, err := strconv.ParseUint(line[4:8], 16, 16)
	if err != nil {
		return Record{}, &FormatError{
			Line:   lineNum,
			Reason: fmt.Sprintf("has invalid address %q", line[4:8]),
		}
	}

	if address >= MemorySize {
		return Record{}, &RangeError{
			Line:   lineNum,
			Reason: fmt.Sprintf("address 0x%x is outside 32k", address),
		}
	}

	size := int(byteCount) - RecordOverhead
	if size > MaxRecordSize {
		return Record{}, &RangeError{
			Line:   lineNum,
			Reason: fmt.Sprintf("page size %d is over %d bytes", size, MaxRecordSize),
		}
	}
	if size < 1 {
		return Record{}, &RangeError{Line: lineNum, Reason: "has no data bytes"}
	}

	if !SamePage(uint32(address), size) {
		return Record{}, &RangeError{Line: lineNum, Reason: "crosses page boundary"}
	}

	return Record{
		address: uint16(address),
		size:    size,
		raw:     line,
	}, nil
}

// SamePage reports whether size bytes starting at address lie in one page.
func SamePage(address uint32, size int) bool {
	end := address + uint32(size) - 1
	return address>>PageBits == end>>PageBits
}
