// Package dateparse converts user-entered dotted dates into display form.
//
// Only one input shape is recognised: year.month.day with a four-digit year,
// for example "2020.11.11". Anything else is reported as not parsed so the
// caller can keep the raw text instead.
package dateparse

import (
	"strings"
	"time"
)

const (
	// inputLayout accepts one- or two-digit months and days.
	inputLayout = "2006.1.2"

	// DisplayLayout is the canonical form, e.g. "11 Nov 2020".
	DisplayLayout = "2 Jan 2006"
)

// Parse converts raw into the canonical "D Mon YYYY" form.
//
// Returns ("", false) when raw is not a three-part dotted date, or when the
// parts do not name a real calendar day (month 13, 30 February). Surrounding
// whitespace is ignored.
func Parse(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.Count(trimmed, ".") != 2 {
		return "", false
	}

	t, err := time.Parse(inputLayout, trimmed)
	if err != nil {
		return "", false
	}

	return t.Format(DisplayLayout), true
}

// ParseOrRaw returns the canonical form of raw, or raw itself (trimmed) if it
// could not be interpreted.
func ParseOrRaw(raw string) string {
	if display, ok := Parse(raw); ok {
		return display
	}
	return strings.TrimSpace(raw)
}
