package simulator

// Option configures a Device.
type Option func(*Device)

// WithConnectResets makes the device answer the first n BEGIN commands with
// RESET, as a board does when opening the port toggles DTR.
func WithConnectResets(n int) Option {
	return func(d *Device) {
		if n >= 0 {
			d.connectResets = n
		}
	}
}

// WithBanner sets MSG lines sent before ACK:BEGIN.
func WithBanner(messages ...string) Option {
	return func(d *Device) {
		d.banner = append([]string(nil), messages...)
	}
}

// WithStuckPage makes writes to the page with the given index silently fail.
// The device still acknowledges them as written.
func WithStuckPage(page int) Option {
	return func(d *Device) {
		d.stuck[page] = true
	}
}

// WithEchoOffset adds delta to the address echoed in page acknowledgements.
func WithEchoOffset(delta uint16) Option {
	return func(d *Device) {
		d.echoOffset = delta
	}
}

// WithContents preloads memory at address.
func WithContents(address uint16, data []byte) Option {
	return func(d *Device) {
		copy(d.mem[int(address):], data)
	}
}
