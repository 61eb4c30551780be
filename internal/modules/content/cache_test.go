package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScanCache_FillRacingPurgeIsNotStored(t *testing.T) {
	c := newScanCache(time.Minute)

	got := c.load("category:life", func() cached {
		c.purge()
		return cached{entries: []Entry{{Slug: "stale"}}}
	})
	assert.Equal(t, "stale", got.entries[0].Slug)

	_, ok := c.peek("category:life")
	assert.False(t, ok)

	c.load("category:life", func() cached { return cached{entries: []Entry{{Slug: "fresh"}}} })
	hit, ok := c.peek("category:life")
	assert.True(t, ok)
	assert.Equal(t, "fresh", hit.entries[0].Slug)
}

func TestScanCache_NilReadsEveryTime(t *testing.T) {
	var c *scanCache
	calls := 0
	for i := 0; i < 2; i++ {
		c.load("k", func() cached { calls++; return cached{} })
	}
	assert.Equal(t, 2, calls)
}
