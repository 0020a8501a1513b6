// Package serialport opens the serial link to the EEPROM burner and provides
// the host-side fix for the reset-on-open behaviour of Arduino-class boards.
//
//	port, err := serialport.Open(serialport.Config{Path: "/dev/ttyUSB0"})
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
//	prog := burner.New(port, burner.WithResetHandler(serialport.HangupFixer{Path: port.Path()}))
//
// Reads time out after Config.ReadTimeout and return (0, nil), which the
// burner treats as "keep waiting".
package serialport
