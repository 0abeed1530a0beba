package hooks

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var slugGrammar = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"simple title", "Web Developer", "web-developer"},
		{"already slugged", "web-developer", "web-developer"},
		{"mixed punctuation", "C++ & Go: A Comparison!", "c-go-a-comparison"},
		{"consecutive separators", "hello -- world", "hello-world"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"uppercase", "OSCP Certification", "oscp-certification"},
		{"unicode stripped", "café résumé", "caf-r-sum"},
		{"numbers kept", "Top 10 Tools 2026", "top-10-tools-2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveSlug(tc.source)
			assert.Equal(t, tc.want, got)
			assert.Regexp(t, slugGrammar, got)
		})
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	sources := []string{"Web Developer", "C++ & Go", "  spaced  out  ", "plain"}
	for _, s := range sources {
		once := DeriveSlug(s)
		assert.Equal(t, once, DeriveSlug(once), "re-deriving must not change a derived slug")
	}
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 0, ReadTime(""))
	assert.Equal(t, 0, ReadTime("   \n\t  "))
	assert.Equal(t, 1, ReadTime("one two three"))
	assert.Equal(t, 1, ReadTime(strings.Repeat("word ", WordsPerMinute)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", WordsPerMinute+1)))
	assert.Equal(t, 2, ReadTime(strings.Repeat("word ", 2*WordsPerMinute)))
	assert.Equal(t, 3, ReadTime(strings.Repeat("word ", 2*WordsPerMinute+1)))
}

func TestPublishStamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	earlier := now.Add(-48 * time.Hour)

	t.Run("draft stays unstamped", func(t *testing.T) {
		assert.Nil(t, PublishStamp(false, nil, now))
	})

	t.Run("first publish stamps now", func(t *testing.T) {
		got := PublishStamp(true, nil, now)
		if assert.NotNil(t, got) {
			assert.Equal(t, now, *got)
		}
	})

	t.Run("existing stamp survives republish", func(t *testing.T) {
		got := PublishStamp(true, &earlier, now)
		if assert.NotNil(t, got) {
			assert.Equal(t, earlier, *got)
		}
	})

	t.Run("existing stamp survives unpublish", func(t *testing.T) {
		got := PublishStamp(false, &earlier, now)
		if assert.NotNil(t, got) {
			assert.Equal(t, earlier, *got)
		}
	})
}
