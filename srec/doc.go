// Package srec provides parsing for Motorola S1 record files destined for a
// page-programmed EEPROM.
//
// # S1 Record Format
//
// Every line of the input is one S1 record, hex-encoded:
//
//	S1[ByteCount(2)][Address(4)][Data(2*N)][Checksum(2)]
//
// ByteCount counts the two address bytes, the N data bytes and the checksum
// byte, so N = ByteCount - 3.
//
// Example record:
//
//	S10B00000001020304050607D8
//	  S1 = record type
//	  0B = byte count (11: 2 address + 8 data + 1 checksum)
//	  0000 = address
//	  0001020304050607 = data
//	  D8 = checksum
//
// # Page Constraints
//
// The target device has 32 KiB of storage written in 64-byte pages. A record is
// accepted only when:
//   - its address is below 0x8000
//   - it carries between 1 and 64 data bytes
//   - all of its bytes fall inside one 64-byte aligned page
//
// The original line text is kept byte-for-byte in the Record because the
// programmer retransmits it verbatim to the device. The checksum byte is not
// validated here; the device validates it on receipt.
//
// # Usage
//
// Parse a file from disk:
//
//	rom, err := srec.Parse("rom.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d bytes in %d pages\n", rom.TotalSize(), rom.PageCount())
//
// Parse from an io.Reader:
//
//	rom, err := srec.ParseReader(strings.NewReader(content))
//
// # Producing Records
//
// EncodeRecord and Paginate build page-aligned S1 records from a memory image,
// and LoadIntelHex converts an Intel HEX file into a ROM:
//
//	lines, err := srec.Paginate(0x0000, image, srec.PageSize)
//
// # Error Handling
//
// Parsing stops at the first bad line; no partial ROM is returned. Errors are
// either *FormatError (the line is not a well-formed S1 record) or *RangeError
// (the record is well-formed but does not fit the device). Both carry the
// 1-based line number.
package srec
