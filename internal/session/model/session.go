package model

// Status walks SignedOut -> Authenticating -> SignedIn, with
// Authenticating -> Error(message) on failure. Logout returns to
// SignedOut from any state.
type Status int

const (
	StatusSignedOut Status = iota
	StatusAuthenticating
	StatusSignedIn
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSignedOut:
		return "signed-out"
	case StatusAuthenticating:
		return "authenticating"
	case StatusSignedIn:
		return "signed-in"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Session is the current authentication state. At most one active session
// exists per process; UserID and Email are set only when signed in, and
// Message carries the adapter's failure text verbatim in the error state.
type Session struct {
	Status  Status
	UserID  string
	Email   string
	Message string
}
