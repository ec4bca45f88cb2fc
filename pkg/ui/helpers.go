package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// truncateCells truncates a string to max visual width (cells), adding
// suffix if needed. Uses go-runewidth to handle wide characters correctly.
func truncateCells(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// Truncate truncates s to maxWidth cells with an ellipsis.
func Truncate(s string, maxWidth int) string {
	return truncateCells(s, maxWidth, "…")
}

// PadRight pads s with spaces to width cells. Strings already at or over
// width are truncated, so columns stay aligned.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft right-aligns s within width cells (numeric columns).
func PadLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}

// FormatMoney renders a decimal amount with two fractional digits and
// thousands separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
