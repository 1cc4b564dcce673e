// Package screen models the three mutually exclusive top-level views of the
// Chipi client as an explicit state machine, independent of any rendering
// concern. Exactly one screen is active at any time because the state is a
// single value; activating one screen deactivates the others by construction.
package screen

// Screen identifies one of the three top-level views.
type Screen int

const (
	// Login is the initial screen.
	Login Screen = iota
	Register
	Chat
)

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case Login:
		return "login"
	case Register:
		return "register"
	case Chat:
		return "chat"
	default:
		return "unknown"
	}
}

// Event is a screen-transition trigger.
type Event int

const (
	// EventLoginSucceeded fires when /api/login reports success.
	EventLoginSucceeded Event = iota
	// EventRegisterSucceeded fires when /api/register reports success.
	EventRegisterSucceeded
	// EventLogout fires when the user leaves the chat.
	EventLogout
	// EventShowRegister fires when the user asks for the registration form.
	EventShowRegister
	// EventShowLogin fires when the user abandons the registration form.
	EventShowLogin
)

// Next is the pure transition function. Events that do not apply to the
// current screen leave it unchanged: a failed login, a failed registration,
// or any transport error never moves the screen.
func Next(s Screen, e Event) Screen {
	switch s {
	case Login:
		switch e {
		case EventLoginSucceeded:
			return Chat
		case EventShowRegister:
			return Register
		}
	case Register:
		switch e {
		case EventRegisterSucceeded, EventShowLogin:
			return Login
		}
	case Chat:
		if e == EventLogout {
			return Login
		}
	}
	return s
}

// ShowsLogout reports whether the logout control is visible on the given
// screen. Only the chat screen carries it.
func ShowsLogout(s Screen) bool {
	return s == Chat
}
