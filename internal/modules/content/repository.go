package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qiushui/site-core/internal/pkg/metrics"
	"go.uber.org/zap"
)

const (
	DefaultExtension = ".mdx"
	DefaultAuthor    = "qiushui"
	DefaultLatest    = 3
)

// Options configures a Repository.
type Options struct {
	Root          string
	Extension     string
	DefaultAuthor string
	Views         ViewSource
	Logger        *zap.Logger
	// Revalidate caches directory scans for this long. Zero disables caching.
	Revalidate time.Duration
}

// Repository reads category folders of content files under Root. The
// filesystem is the only source of truth; view counts are decoration.
type Repository struct {
	root   string
	ext    string
	author string
	views  ViewSource
	log    *zap.Logger
	cache  *scanCache
}

func NewRepository(opts Options) *Repository {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = DefaultAuthor
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Repository{
		root:   opts.Root,
		ext:    opts.Extension,
		author: opts.DefaultAuthor,
		views:  opts.Views,
		log:    opts.Logger,
		cache:  newScanCache(opts.Revalidate),
	}
}

func (r *Repository) Root() string { return r.root }

// Invalidate drops every cached scan.
func (r *Repository) Invalidate() { r.cache.purge() }

// ListCategories returns the immediate subdirectories of the root. An
// unreadable root yields an empty list.
func (r *Repository) ListCategories(_ context.Context) []string {
	return cloneStrings(r.cache.load(categoriesEntry, func() cached {
		return cached{categories: r.scanCategories()}
	}).categories)
}

// ListEntriesInCategory returns the decorated entries of one category, newest
// first. Unknown categories yield an empty list.
func (r *Repository) ListEntriesInCategory(ctx context.Context, category string) []Entry {
	return r.decorate(ctx, r.category(category)).Entries
}

// ListAllEntries returns every entry across categories, newest first.
func (r *Repository) ListAllEntries(ctx context.Context) []Entry {
	return r.All(ctx).Entries
}

// All is ListAllEntries with the decoration status.
func (r *Repository) All(ctx context.Context) Listing {
	return r.decorate(ctx, r.allRaw(ctx))
}

// Category is ListEntriesInCategory with the decoration status.
func (r *Repository) Category(ctx context.Context, category string) Listing {
	return r.decorate(ctx, r.category(category))
}

// Latest returns the n newest entries.
func (r *Repository) Latest(ctx context.Context, n int) []Entry {
	if n <= 0 {
		n = DefaultLatest
	}
	entries := r.allRaw(ctx)
	if len(entries) > n {
		entries = entries[:n]
	}
	return r.decorate(ctx, entries).Entries
}

// GetEntryBySlug reads one entry. The bool is false when it does not exist.
func (r *Repository) GetEntryBySlug(ctx context.Context, category, slug string) (*Entry, bool) {
	if !safeSegment(category) || !safeSegment(slug) {
		return nil, false
	}

	var entry Entry
	if hit, ok := r.cache.peek(categoryKey(category)); ok {
		idx := -1
		for i := range hit.entries {
			if hit.entries[i].Slug == slug {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		entry = cloneEntry(hit.entries[idx])
	} else {
		e, err := r.readEntry(category, slug)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				r.log.Warn("read content file failed",
					zap.String("category", category), zap.String("slug", slug), zap.Error(err))
			}
			return nil, false
		}
		entry = e
	}

	listing := r.decorate(ctx, []Entry{entry})
	return &listing.Entries[0], true
}

// Statistics counts entries per category. Categories without files report
// zero. Posts are attached when includeEntries is set.
func (r *Repository) Statistics(ctx context.Context, includeEntries bool) Stats {
	categories := r.ListCategories(ctx)
	stats := Stats{TotalCategories: len(categories), Categories: make([]CategorySummary, 0, len(categories))}

	var counts map[string]int64
	if includeEntries {
		counts, _ = r.counts(ctx)
	}
	for _, name := range categories {
		entries := r.category(name)
		summary := CategorySummary{Name: name, Count: len(entries)}
		if includeEntries {
			summary.Posts = applyCounts(entries, counts)
		}
		stats.TotalPosts += summary.Count
		stats.Categories = append(stats.Categories, summary)
	}
	return stats
}

// Filter narrows entries by category and tag. Empty criteria match everything
// and tags compare case-insensitively.
func Filter(entries []Entry, category, tag string) []Entry {
	if category == "" && tag == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		if tag != "" && !hasTag(e, tag) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hasTag(e Entry, tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (r *Repository) allRaw(ctx context.Context) []Entry {
	var all []Entry
	for _, name := range r.ListCategories(ctx) {
		all = append(all, r.category(name)...)
	}
	if all == nil {
		return []Entry{}
	}
	SortByDate(all)
	return all
}

// category returns a private copy of the sorted, undecorated entries.
func (r *Repository) category(name string) []Entry {
	if !safeSegment(name) {
		return []Entry{}
	}
	return cloneEntries(r.cache.load(categoryKey(name), func() cached {
		return cached{entries: r.scanCategory(name)}
	}).entries)
}

func (r *Repository) scanCategories() []string {
	metrics.RecordScan("root")
	items, err := os.ReadDir(r.root)
	if err != nil {
		r.log.Error("read content root failed", zap.String("root", r.root), zap.Error(err))
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() && !strings.HasPrefix(item.Name(), ".") {
			out = append(out, item.Name())
		}
	}
	return out
}

func (r *Repository) scanCategory(name string) []Entry {
	metrics.RecordScan("category")
	dir := filepath.Join(r.root, name)
	items, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.log.Warn("read category failed", zap.String("category", name), zap.Error(err))
		}
		return []Entry{}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		fileName := item.Name()
		if item.IsDir() || strings.HasPrefix(fileName, ".") || filepath.Ext(fileName) != r.ext {
			continue
		}
		slug := strings.TrimSuffix(fileName, r.ext)
		entry, err := r.readEntry(name, slug)
		if err != nil {
			r.log.Warn("read content file failed",
				zap.String("category", name), zap.String("file", fileName), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	SortByDate(entries)
	return entries
}

func (r *Repository) readEntry(category, slug string) (Entry, error) {
	path := filepath.Join(r.root, category, slug+r.ext)
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	if !info.Mode().IsRegular() {
		return Entry{}, os.ErrNotExist
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	entry, clean := ParseEntry(category, slug, string(raw), r.author)
	if !clean {
		metrics.ContentParseErrorsTotal.Inc()
		r.log.Warn("front-matter could not be parsed, using defaults", zap.String("path", path))
	}
	return entry, nil
}

func (r *Repository) counts(ctx context.Context) (map[string]int64, bool) {
	if r.views == nil {
		return nil, true
	}
	counts, err := r.views.Counts(ctx)
	if err != nil {
		r.log.Warn("view counts unavailable, listing without them", zap.Error(err))
		return nil, false
	}
	return counts, true
}

// decorate fills Views from one bulk read. entries must already be a private
// copy.
func (r *Repository) decorate(ctx context.Context, entries []Entry) Listing {
	if len(entries) == 0 {
		return Listing{Entries: entries}
	}
	counts, ok := r.counts(ctx)
	return Listing{Entries: applyCounts(entries, counts), Degraded: !ok}
}

func applyCounts(entries []Entry, counts map[string]int64) []Entry {
	for i := range entries {
		entries[i].Views = counts[entries[i].Key()]
	}
	return entries
}

func categoryKey(name string) string { return "category:" + name }

// safeSegment reports whether s names a single visible entry below its
// parent. Dot-prefixed names are hidden, matching the scanners.
func safeSegment(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

func cloneEntry(e Entry) Entry {
	e.Tags = cloneStrings(e.Tags)
	return e
}

func cloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i := range in {
		out[i] = cloneEntry(in[i])
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
