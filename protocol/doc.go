// Package protocol implements the ASCII request/response protocol spoken by the
// EEPROM burner firmware.
//
// This package provides functions to build request lines and to classify
// response lines. It does not own the transport.
//
// # Protocol Overview
//
// Every message is one line of ASCII text terminated by a newline. The host
// sends one request and blocks until the device sends one terminal response:
//
//	Host → device:  BEGIN | ERASE | END | W<S1 record> | V<S1 record>
//	Device → host:  ACK:BEGIN | ACK:ERASE | ACK:END
//	                ACK:<W|V>:<hex address>:<decimal size>
//	                NAK:<message> | MSG:<message> | RESET
//
// Where:
//   - W asks the device to write the page if its content differs
//   - V asks the device to compare the page without writing
//   - ACK:W means the page content differed; ACK:V means it already matched
//   - MSG lines are informational and may precede the terminal response
//   - RESET is sent by the firmware when it boots
//
// # Request Builders
//
// Use the Build* functions to create request lines:
//
//	line := protocol.BuildCommand(protocol.CmdBegin)
//	line := protocol.BuildPageCommand(protocol.ModeWrite, record.Raw())
//
// # Response Classification
//
// Classify turns one received line into a typed Response:
//
//	resp := protocol.Classify("ACK:W:0040:8")
//	// resp.Kind == protocol.KindAck
//	// resp.Page == &protocol.PageAck{Mode: 'W', Address: 0x40, Size: 8}
//
// ReadResponse combines LineReader and Classify: it skips blank lines, reports
// MSG lines through a callback and returns the first terminal response. NAK
// responses come back as *DeviceError, unrecognised lines as *ProtocolError.
//
// # Read Timeouts
//
// Serial ports configured with a read timeout return (0, nil) when no data
// arrived. LineReader treats that as "keep waiting" rather than as an error or
// end of stream, and checks the context between reads.
package protocol
