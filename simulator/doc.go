// Package simulator provides an in-memory EEPROM burner that speaks the same
// line protocol as the firmware.
//
// A Device models a 32 KiB EEPROM behind the burner: memory starts erased
// (0xFF), page writes only touch memory when the content differs, and every
// answer is a CRLF-terminated line. It implements io.ReadWriteCloser so it can
// replace a serial port, and HandleReset so it can stand in as the reset
// handler too.
//
//	dev := simulator.New(simulator.WithConnectResets(1))
//	prog := burner.New(dev, burner.WithResetHandler(dev))
//	res, err := prog.Program(ctx, rom)
//
// Faults can be injected with WithStuckPage and WithEchoOffset, and Reboot
// makes the device announce a reset in the middle of a session.
package simulator
