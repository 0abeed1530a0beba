package utils

import (
	"strings"
	"time"
)

// FormatDate renders a date for display. Short form: "Jan 2020".
func FormatDate(t time.Time, short bool) string {
	if short {
		return t.Format("Jan 2006")
	}
	return t.Format("January 2, 2006")
}

// FormatAnyDate is the template-facing form of FormatDate: it tolerates the
// pointer timestamps the models use for optional dates.
func FormatAnyDate(v interface{}, short bool) string {
	switch t := v.(type) {
	case time.Time:
		return FormatDate(t, short)
	case *time.Time:
		if t == nil {
			return ""
		}
		return FormatDate(*t, short)
	}
	return ""
}

// FormatDateRange renders "Jan 2020 - Present" style ranges for experience
// and project timelines.
func FormatDateRange(start time.Time, end *time.Time, ongoing bool) string {
	from := FormatDate(start, true)
	if ongoing || end == nil {
		return from + " - Present"
	}
	return from + " - " + FormatDate(*end, true)
}

// FormatAnyDateRange mirrors FormatDateRange for templates, tolerating a
// pointer start date.
func FormatAnyDateRange(start interface{}, end *time.Time, ongoing bool) string {
	switch t := start.(type) {
	case time.Time:
		return FormatDateRange(t, end, ongoing)
	case *time.Time:
		if t == nil {
			return ""
		}
		return FormatDateRange(*t, end, ongoing)
	}
	return ""
}

// Truncate shortens text to at most length runes, appending an ellipsis.
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return strings.TrimSpace(string(runes[:length])) + "..."
}
