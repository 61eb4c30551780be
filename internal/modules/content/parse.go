package content

// ParseEntry builds an entry from a raw content file. It never fails; missing
// or unreadable metadata falls back to defaults. clean is false when the
// front-matter was present but could not be fully decoded.
func ParseEntry(category, slug, raw, defaultAuthor string) (entry Entry, clean bool) {
	meta, body, hasMeta, closed := splitFrontMatter(raw)

	var fm frontMatter
	clean = closed
	if hasMeta && closed {
		fm, clean = parseFrontMatter(meta)
	}

	entry = Entry{
		Slug:     slug,
		Category: category,
		Title:    string(fm.Title),
		Author:   string(fm.Author),
		Excerpt:  string(fm.Excerpt),
		Date:     string(fm.Date),
		Tags:     []string(fm.Tags),
		Location: string(fm.Location),
		Content:  body,
	}
	if entry.Title == "" {
		entry.Title = slug
	}
	if entry.Author == "" {
		entry.Author = defaultAuthor
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	return entry, clean
}
