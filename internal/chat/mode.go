package chat

import "strings"

// Mode governs how each line of operator input is interpreted.
type Mode string

const (
	ModeUser      Mode = "user"
	ModeAssistant Mode = "assistant"
	ModeSystem    Mode = "system"
	ModeJSON      Mode = "json"
	ModeRaw       Mode = "raw"
)

// ParseMode normalizes an operator-supplied mode name. "none" is accepted as
// an alias for raw. The boolean reports whether the name was recognized.
func ParseMode(name string) (Mode, bool) {
	candidate := strings.ToLower(strings.TrimSpace(name))
	if candidate == "none" {
		candidate = string(ModeRaw)
	}
	switch m := Mode(candidate); m {
	case ModeUser, ModeAssistant, ModeSystem, ModeJSON, ModeRaw:
		return m, true
	default:
		return "", false
	}
}
