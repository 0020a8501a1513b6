package srec

import (
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
)

// LoadIntelHexFile converts an Intel HEX file into page-aligned S1 records.
func LoadIntelHexFile(path string, chunk int) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadIntelHex(f, chunk)
}

// LoadIntelHex converts Intel HEX input into a ROM. Every data segment is
// split into records of at most chunk bytes that stay inside one page.
func LoadIntelHex(r io.Reader, chunk int) (*ROM, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, fmt.Errorf("failed to parse intel hex: %w", err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return nil, fmt.Errorf("no data segments found")
	}

	var lines []string
	for _, seg := range segments {
		segLines, err := Paginate(seg.Address, seg.Data, chunk)
		if err != nil {
			return nil, fmt.Errorf("segment at 0x%X: %w", seg.Address, err)
		}
		lines = append(lines, segLines...)
	}

	return ParseLines(lines)
}
