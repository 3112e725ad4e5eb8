// Package util provides small text helpers for laying out table cells.
package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to truncated cells.
const Ellipsis = "…"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// SingleLine collapses line breaks and tabs into spaces so a value fits one row.
func SingleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Truncate shortens s to at most width terminal columns, ending with an
// ellipsis when something was cut. Escape sequences and wide characters are
// measured the way the terminal draws them.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// FitCell renders s on one line, exactly width columns wide: truncated when
// longer, padded with spaces when shorter.
func FitCell(s string, width int) string {
	s = Truncate(SingleLine(s), width)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
