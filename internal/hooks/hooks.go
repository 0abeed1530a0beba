// Package hooks holds the authoring-time derivations applied before a write is
// persisted. Every function here is pure and idempotent: re-applying it to its
// own output is a no-op, so retried writes never drift.
package hooks

import (
	"strings"
	"time"
)

// WordsPerMinute is the reading speed assumed by ReadTime.
const WordsPerMinute = 200

// DeriveSlug converts a human-readable title into a URL-safe slug: lower-case,
// every run of characters outside [a-z0-9-] collapsed to a single hyphen, and
// leading/trailing hyphens trimmed. A string with no alphanumerics yields "".
func DeriveSlug(source string) string {
	lowered := strings.ToLower(source)

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			// Runs of disallowed characters (including literal hyphens)
			// collapse into one separator.
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// ReadTime estimates reading minutes for a body of text, rounding up.
// A zero-word body reads in zero minutes.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// PublishStamp returns the publish timestamp an entity should carry after a
// write: the existing stamp if one is already set, the current time on the
// first transition to published, nil otherwise. An existing stamp is never
// overwritten.
func PublishStamp(published bool, existing *time.Time, now time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	if published {
		stamp := now.UTC()
		return &stamp
	}
	return nil
}
