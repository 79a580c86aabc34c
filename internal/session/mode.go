// Package session provides the interactive level editing loop.
package session

// Mode represents the current input mode.
type Mode int

const (
	// ModeView is the default mode: arrows move the focus between rooms.
	ModeView Mode = iota
	// ModeCommand is active while a command line is being typed.
	ModeCommand
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}
