package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the number of terminal cells s occupies.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText shortens text to maxWidth cells, ending in the configured
// ellipsis. The bool reports whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if VisibleLength(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= VisibleLength(cfg.Ellipsis) {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix shortens the text between prefix and suffix so
// the whole row fits maxWidth, e.g. "▤ Development/" at 12 becomes
// "▤ Develo.../". When even the decorations do not fit, the combined row is
// cut like TruncateText.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	row := prefix + text + suffix
	if maxWidth <= 0 {
		return "", true
	}
	if VisibleLength(row) <= maxWidth {
		return row, false
	}

	room := maxWidth - VisibleLength(prefix) - VisibleLength(suffix)
	if room <= VisibleLength(cfg.Ellipsis) {
		return TruncateText(row, maxWidth, cfg)
	}
	return prefix + ansi.Truncate(text, room, cfg.Ellipsis) + suffix, true
}

// PadRight pads s with spaces to a visible width of width.
func PadRight(s string, width int) string {
	if n := VisibleLength(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
