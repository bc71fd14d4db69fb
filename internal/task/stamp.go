package task

import (
	"fmt"
	"time"
)

// StampLayout is the org timestamp layout shared by both notations:
// date, three-letter weekday, 24-hour time. No seconds, no zone.
const StampLayout = "2006-01-02 Mon 15:04"

// ParseStamp parses an org timestamp body (the text between the brackets).
// Any deviation from the layout is an error; callers demote the enclosing
// entry to opaque pass-through rather than failing the parse.
func ParseStamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(StampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatStamp renders a timestamp in the org layout. The weekday is
// derived from the date, so re-rendering a parsed stamp is stable.
func FormatStamp(t time.Time) string {
	return t.Format(StampLayout)
}
