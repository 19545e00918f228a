// Package timefmt renders timestamps the way the dashboard shows them in its
// log views: month-day and wall clock, in local time.
package timefmt

import (
	"strings"
	"time"
)

// Layout is MM-DD HH:mm:ss.
const Layout = "01-02 15:04:05"

// layouts accepted by FormatString, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Format renders t in local time using Layout.
func Format(t time.Time) string {
	return t.Local().Format(Layout)
}

// FormatString parses an ISO-8601 timestamp and renders it with Format.
// Timestamps without a zone are taken as local time. Input that does not
// parse is returned unchanged.
func FormatString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, trimmed, time.Local)
		if err == nil {
			return Format(t)
		}
	}
	return s
}
