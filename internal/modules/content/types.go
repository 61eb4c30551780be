package content

import (
	"context"
	"strings"
)

// Entry is one blog post parsed from a content file.
type Entry struct {
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Location string   `json:"location,omitempty"`
	Content  string   `json:"content"`
	Views    int64    `json:"views"`
}

// Key is the view counter identity of the entry, trimmed the same way the
// views service trims incoming keys.
func (e Entry) Key() string {
	key := strings.Trim(strings.TrimSpace(e.Category+"/"+e.Slug), "/")
	return strings.TrimSpace(key)
}

type CategorySummary struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Posts []Entry `json:"posts,omitempty"`
}

type Stats struct {
	TotalPosts      int               `json:"total_posts"`
	TotalCategories int               `json:"total_categories"`
	Categories      []CategorySummary `json:"categories"`
}

// ViewSource supplies view counts for decoration. A failing source never
// fails a listing.
type ViewSource interface {
	Counts(ctx context.Context) (map[string]int64, error)
}

// Listing is a decorated set of entries. Degraded reports that view counts
// could not be loaded and every Views field was left at zero.
type Listing struct {
	Entries  []Entry `json:"entries"`
	Degraded bool    `json:"views_degraded"`
}
