package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2024-03-01",
		"2024/03/01",
		"2024/3/1",
		"2024-3-1",
		"2024-3-1 00:00",
		"March 1, 2024",
		"Mar 1, 2024",
		"1 Mar 2024",
		"2024-03-01T00:00:00Z",
		"2024-03-01 00:00",
	} {
		assert.True(t, want.Equal(ParseDate(raw)), raw)
	}

	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("someday").IsZero())
}

func TestSortByDate_StableDescending(t *testing.T) {
	entries := []Entry{
		{Slug: "undated"},
		{Slug: "old", Date: "2020-01-01"},
		{Slug: "tie-1", Date: "2024-01-01"},
		{Slug: "new", Date: "2024-05-01"},
		{Slug: "tie-2", Date: "2024/1/1"},
		{Slug: "garbage", Date: "soon"},
	}
	SortByDate(entries)

	slugs := make([]string, len(entries))
	for i, e := range entries {
		slugs[i] = e.Slug
	}
	assert.Equal(t, []string{"new", "tie-1", "tie-2", "old", "undated", "garbage"}, slugs)
}
