package burner

// State is the protocol session state.
type State int

const (
	// StateInit is the state before a successful handshake
	StateInit State = iota

	// StateBegun follows ACK:BEGIN
	StateBegun

	// StateErased follows ACK:ERASE
	StateErased

	// StateWriting is entered by the write pass
	StateWriting

	// StateVerifying is entered by the verify pass
	StateVerifying

	// StateEnded follows ACK:END
	StateEnded

	// StateClosed follows Close; the transport has been released
	StateClosed

	// StateFailed follows any fatal session error; only Close is allowed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateBegun:
		return "begun"
	case StateErased:
		return "erased"
	case StateWriting:
		return "writing"
	case StateVerifying:
		return "verifying"
	case StateEnded:
		return "ended"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// allows reports whether an operation may start in state s.
func (s State) allows(op string) bool {
	switch op {
	case opBegin:
		return s == StateInit
	case opErase:
		return s == StateBegun
	case opWrite:
		return s == StateBegun || s == StateErased
	case opVerify:
		return s == StateWriting
	case opEnd:
		return s == StateBegun || s == StateErased || s == StateWriting || s == StateVerifying
	default:
		return false
	}
}

const (
	opBegin  = "begin"
	opErase  = "erase"
	opWrite  = "write pass"
	opVerify = "verify pass"
	opEnd    = "end"
)
