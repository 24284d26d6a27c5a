package interfaces

import "context"

// Style selects how revealed content is rendered.
type Style int

const (
	StylePlain Style = iota
	StyleWarning
	StyleInfo
	StyleSuccess
)

// Prompt describes one question to the operator.
type Prompt struct {
	// Label is shown verbatim before the input.
	Label string

	// Default is returned when the operator enters an empty line.
	Default string

	// Masked hides the input (passphrases).
	Masked bool
}

// Console is the operator interaction port. Implementations hold no secrets
// beyond the current line.
type Console interface {
	// Ask blocks until the operator answers or ctx is done. An operator abort
	// returns ErrInterrupted.
	Ask(ctx context.Context, p Prompt) (string, error)

	// Reveal shows lines to the operator.
	Reveal(style Style, lines ...string)

	// Clear wipes the visible screen.
	Clear()
}
