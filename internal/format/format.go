// Package format holds the display formatting contracts: 24-hour store times
// render as 12-hour with an AM/PM suffix, and currency renders as whole-unit
// amounts with thousands grouping.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Time12h converts an "HH:MM" 24-hour time value to "H:MM AM/PM".
// Returns the input unchanged when it does not look like a time value.
func Time12h(time24 string) string {
	parts := strings.SplitN(time24, ":", 2)
	if len(parts) != 2 {
		return time24
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return time24
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, parts[1], ampm)
}

// Amount renders a whole-unit, thousands-grouped amount with no currency
// marker: 1234 -> "1,234". Used in the plain-text order summary, which must
// stay free of glyphs that can fail to render in a paste target.
func Amount(d decimal.Decimal) string {
	return group(d.Round(0).String())
}

func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
