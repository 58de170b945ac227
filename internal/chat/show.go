package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// renderHistory formats the history as 2-space-indented JSON with non-ASCII
// characters escaped, so transcripts survive terminals and logs with broken
// encodings. Parsing the output back yields the history exactly.
func renderHistory(history []Message) string {
	if history == nil {
		history = []Message{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		// Message is two string fields; this cannot fail.
		return "[]"
	}
	return escapeNonASCII(string(data))
}

// escapeNonASCII rewrites runes outside the ASCII range as \uXXXX escapes,
// using surrogate pairs for runes beyond the basic multilingual plane.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		}
	}
	return b.String()
}
