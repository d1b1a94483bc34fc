package tui

import (
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 200

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case " ", "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formField is one labelled input line.
type formField struct {
	label  string
	value  string
	secret bool
	hint   string
	err    string
}

// renderField renders a field with a focus marker, a block cursor when
// focused, and its error underneath.
func renderField(f formField, focused bool, labelWidth int) string {
	cursor := "  "
	label := metaStyle.Render(padRight(f.label, labelWidth))
	if focused {
		cursor = inputPromptStyle.Render("> ")
		label = selectedStyle.Render(padRight(f.label, labelWidth))
	}

	value := f.value
	if f.secret {
		value = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	var shown string
	switch {
	case value == "" && !focused && f.hint != "":
		shown = inputPlaceholderStyle.Render(f.hint)
	case focused:
		shown = normalStyle.Render(value) + accentStyle.Render("█")
	default:
		shown = normalStyle.Render(value)
	}

	line := " " + cursor + label + " " + shown
	if f.err != "" {
		line += "\n " + strings.Repeat(" ", labelWidth+3) + errorStyle.Render(f.err)
	}
	return line
}
