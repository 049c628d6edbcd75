// Package display holds pure formatting helpers for user-facing output.
package display

import (
	"html"
	"time"
)

// invalidDate mirrors the text browsers render for unparseable dates.
const invalidDate = "Invalid Date"

// dateLayouts lists the accepted input formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// FormatDate renders a date string for display, e.g. "2026-03-01" becomes
// "March 1, 2026". Unparseable input yields "Invalid Date".
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return invalidDate
}

// EscapeHTML neutralizes markup-significant characters before display.
// Total over all string inputs.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
