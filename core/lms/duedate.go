package lms

import (
	"strings"
	"time"
)

// for tests
var nowFunc = time.Now

// dueTimeLayouts covers the free-text shapes the LMS has been seen emitting.
var dueTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
}

// resolveDueAt picks an assignment's deadline: the epoch-millis field wins,
// then the free-text date string. When neither is usable it falls back to
// "now"; ok is false so callers can log that a deadline was fabricated.
func resolveDueAt(a Assignment) (due time.Time, ok bool) {
	if a.DueTime != nil && a.DueTime.Time > 0 {
		return time.UnixMilli(a.DueTime.Time).UTC(), true
	}
	if s := strings.TrimSpace(a.DueTimeString); s != "" {
		for _, layout := range dueTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	}
	return nowFunc().UTC(), false
}
