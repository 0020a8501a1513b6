package srec

import (
	"fmt"
	"io"
)

// Record is a single validated S1 record. It always fits inside one page of
// the device. Records are created by the parser and never modified.
type Record struct {
	address uint16
	size    int
	raw     string
}

// Address returns the first device address covered by the record.
func (r Record) Address() uint16 { return r.address }

// Size returns the number of data bytes in the record (1 to 64).
func (r Record) Size() int { return r.size }

// Raw returns the original record text, without line terminator.
func (r Record) Raw() string { return r.raw }

// Page returns the index of the 64-byte page the record belongs to.
func (r Record) Page() int { return int(r.address) >> PageBits }

// EndAddress returns the last device address covered by the record.
func (r Record) EndAddress() uint16 { return r.address + uint16(r.size) - 1 }

func (r Record) String() string {
	return fmt.Sprintf("address=0x%04X size=%d", r.address, r.size)
}

// ROM is the ordered collection of records parsed from one input file.
// Record order is transmission order.
type ROM struct {
	records []Record
	size    int
}

// NewROM builds a ROM from records that were produced by the parser.
func NewROM(records ...Record) *ROM {
	rom := &ROM{records: make([]Record, 0, len(records))}
	for _, rec := range records {
		rom.add(rec)
	}
	return rom
}

func (r *ROM) add(rec Record) {
	r.records = append(r.records, rec)
	r.size += rec.size
}

// Records returns a copy of the records in file order.
func (r *ROM) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Record returns the i-th record.
func (r *ROM) Record(i int) Record { return r.records[i] }

// TotalSize returns the sum of all record sizes in bytes.
func (r *ROM) TotalSize() int { return r.size }

// PageCount returns the number of records, each of which is sent as one page
// transfer.
func (r *ROM) PageCount() int { return len(r.records) }

// WriteTo writes the raw record lines, newline terminated.
func (r *ROM) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, rec := range r.records {
		n, err := io.WriteString(w, rec.raw+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
