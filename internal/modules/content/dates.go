package content

import (
	"sort"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate parses a front-matter date. Unknown formats yield the zero time.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortByDate orders entries newest first. Equal dates keep their input order
// and undated entries go last.
func SortByDate(entries []Entry) {
	keys := make([]time.Time, len(entries))
	for i := range entries {
		keys[i] = ParseDate(entries[i].Date)
	}
	sort.Stable(byDate{entries: entries, keys: keys})
}

type byDate struct {
	entries []Entry
	keys    []time.Time
}

func (b byDate) Len() int           { return len(b.entries) }
func (b byDate) Less(i, j int) bool { return b.keys[i].After(b.keys[j]) }
func (b byDate) Swap(i, j int) {
	b.entries[i], b.entries[j] = b.entries[j], b.entries[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
