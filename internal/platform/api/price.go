package api

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRe matches the first plausible money amount in free text, e.g.
// "$10", "10.50", "tickets from 12,50" is out of scope (US-format input).
var amountRe = regexp.MustCompile(`\d+(?:\.\d{1,2})?`)

// ExtractAmount pulls a numeric amount (major currency units) out of the
// envelope's free-text ticket price. Returns false when no amount can be
// found, which callers treat as a free event.
func ExtractAmount(price string) (float64, bool) {
	m := amountRe.FindString(strings.TrimSpace(price))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Cents converts major units to an integer minor-unit amount, the form
// most provider price fields want.
func Cents(amount float64) int {
	return int(amount*100 + 0.5)
}
