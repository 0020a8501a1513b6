// Package burner drives an EEPROM burner through a programming session.
//
// # Overview
//
// A session walks the device through a fixed sequence:
//   - BEGIN handshake, recovering from device resets caused by opening the port
//   - Optional ERASE of the whole device
//   - Write pass: every page record is sent in write mode; the device only
//     rewrites pages whose content differs and says which ones it changed
//   - Verify pass: only when the write pass changed something, every record is
//     sent again in verify mode and must match
//   - END
//
// # Basic Usage
//
//	port, err := serialport.Open(serialport.Config{Path: "/dev/ttyUSB0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	rom, err := srec.Parse("rom.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := burner.New(port,
//	    burner.WithResetHandler(serialport.HangupFixer{Path: "/dev/ttyUSB0"}),
//	)
//	res, err := prog.Program(context.Background(), rom)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages updated\n", res.UpdatedPages)
//
// # Step by step
//
// The individual operations are exported for callers that need finer
// control. Calling one out of order returns a *StateError:
//
//	prog.Begin(ctx)
//	updated, _ := prog.WritePass(ctx, rom)
//	if updated > 0 {
//	    prog.VerifyPass(ctx, rom)
//	}
//	prog.End(ctx)
//
// # Resets
//
// Opening a serial port usually toggles DTR, which reboots Arduino-class
// boards. The device announces this with a RESET line. During Begin the
// programmer runs the configured ResetHandler and resends BEGIN. A RESET at any
// other time is a *ResetError: the device content is unknown and the session
// must be started again.
//
// # Errors
//
// Device failures surface as *protocol.DeviceError, unexpected lines as
// *protocol.ProtocolError. Acknowledgements that echo the wrong page produce a
// *ValidationError, and a page that still differs in the verify pass produces a
// *DataIntegrityError. After any of these the programmer is in StateFailed and
// only Close is allowed.
package burner
