package console

import "github.com/ruteri/failsafe/interfaces"

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiBlue   = "\033[34m"
	ansiClear  = "\033[H\033[2J"
	maskedEcho = "********"
)

func paint(style interfaces.Style, text string, color bool) string {
	if !color {
		return text
	}
	switch style {
	case interfaces.StyleWarning:
		return ansiRed + text + ansiReset
	case interfaces.StyleInfo:
		return ansiBlue + text + ansiReset
	case interfaces.StyleSuccess:
		return ansiGreen + text + ansiReset
	default:
		return text
	}
}
