package roomchat

// ConnectionState represents the current state of a Session's connection.
type ConnectionState int

const (
	// StateClosed means no connection exists. This is the initial state
	// of a new Session and the final state after Close.
	StateClosed ConnectionState = iota

	// StateConnecting means the session is establishing a connection.
	StateConnecting

	// StateOpen means the connection is established and ready.
	StateOpen

	// StateClosing means the session is tearing down its connection.
	StateClosing

	// StateFailed means the session hit a transport or address error.
	// Failed is terminal for the handle: construct a new Session to retry.
	StateFailed
)

// String returns the string representation of a ConnectionState.
func (s ConnectionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateEvent represents a state change event.
type StateEvent struct {
	OldState ConnectionState
	NewState ConnectionState
	Err      error // Optional error that caused the state change
}
