package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntry_RoundTrip(t *testing.T) {
	raw := "---\ntitle: \"T\"\ndate: 2024-01-01\ntags: [\"a\", \"b\"]\n---\nHello\n"
	entry, clean := ParseEntry("frontend", "post", raw, "qiushui")

	assert.True(t, clean)
	assert.Equal(t, "T", entry.Title)
	assert.Equal(t, "2024-01-01", entry.Date)
	assert.Equal(t, []string{"a", "b"}, entry.Tags)
	assert.Contains(t, entry.Content, "Hello")
	assert.Equal(t, "qiushui", entry.Author)
	assert.Equal(t, "frontend/post", entry.Key())
}

func TestParseEntry_NoFrontMatter(t *testing.T) {
	entry, clean := ParseEntry("notes", "plain-file", "# Just a body\n", "qiushui")

	assert.True(t, clean)
	assert.Equal(t, "plain-file", entry.Title)
	assert.Equal(t, []string{}, entry.Tags)
	assert.Equal(t, "", entry.Date)
	assert.Equal(t, "", entry.Excerpt)
	assert.Equal(t, "# Just a body\n", entry.Content)
}

func TestParseEntry_AllKeys(t *testing.T) {
	raw := "\ufeff---\r\n" +
		"title: Trip\r\n" +
		"date: 2023-07-04T10:00:00Z\r\n" +
		"author: guest\r\n" +
		"excerpt: short\r\n" +
		"location: Chengdu\r\n" +
		"tags: travel, food ,\r\n" +
		"extra: ignored\r\n" +
		"---\r\n" +
		"body"
	entry, clean := ParseEntry("life", "trip", raw, "qiushui")

	assert.True(t, clean)
	assert.Equal(t, "Trip", entry.Title)
	assert.Equal(t, "2023-07-04T10:00:00Z", entry.Date)
	assert.Equal(t, "guest", entry.Author)
	assert.Equal(t, "short", entry.Excerpt)
	assert.Equal(t, "Chengdu", entry.Location)
	assert.Equal(t, []string{"travel", "food"}, entry.Tags)
	assert.Equal(t, "body", entry.Content)
}

func TestParseEntry_MalformedYAMLFallsBack(t *testing.T) {
	raw := "---\ntitle: [unclosed\n---\nstill here\n"
	entry, clean := ParseEntry("c", "broken", raw, "qiushui")

	assert.False(t, clean)
	assert.Equal(t, "broken", entry.Title)
	assert.Equal(t, []string{}, entry.Tags)
	assert.Equal(t, "still here\n", entry.Content)
}

func TestParseEntry_UnclosedFence(t *testing.T) {
	raw := "---\ntitle: never closed\nbody text\n"
	entry, clean := ParseEntry("c", "open", raw, "qiushui")

	assert.False(t, clean)
	assert.Equal(t, "open", entry.Title)
	assert.Equal(t, "title: never closed\nbody text\n", entry.Content)
}

func TestParseEntry_BadKeyKeepsOthers(t *testing.T) {
	raw := "---\ntitle: Good\ntags:\n  nested: map\n---\n"
	entry, clean := ParseEntry("c", "partial", raw, "qiushui")

	assert.False(t, clean)
	assert.Equal(t, "Good", entry.Title)
	assert.Equal(t, []string{}, entry.Tags)
}

func TestParseEntry_NullValuesDefault(t *testing.T) {
	raw := "---\ntitle: ~\ntags:\nauthor: null\n---\n"
	entry, _ := ParseEntry("c", "nulls", raw, "qiushui")

	assert.Equal(t, "nulls", entry.Title)
	assert.Equal(t, "qiushui", entry.Author)
	assert.Equal(t, []string{}, entry.Tags)
}

func TestParseEntry_EmptyBlock(t *testing.T) {
	entry, clean := ParseEntry("c", "empty", "---\n---\nbody", "qiushui")

	assert.True(t, clean)
	assert.Equal(t, "empty", entry.Title)
	assert.Equal(t, "body", entry.Content)
}

func TestEntryKey_TrimsLikeCounterKeys(t *testing.T) {
	assert.Equal(t, "life/trip", Entry{Category: "life", Slug: "trip"}.Key())
	assert.Equal(t, "life/ trip", Entry{Category: "life", Slug: " trip "}.Key())
	assert.Equal(t, "trip", Entry{Category: " ", Slug: "trip"}.Key())
}
