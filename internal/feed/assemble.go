package feed

// assemble composes the feed envelope for a fetched page. Entries are
// mapped through the provider's representation transform; the envelope's
// Updated comes from the page, not from the first visible entry.
func assemble[E, T any](p Provider[E, T], pg Page[E]) Feed[T] {
	entries := make([]Entry[T], 0, len(pg.Entries))
	for _, e := range pg.Entries {
		entries = append(entries, Entry[T]{
			ID:      p.URNFor(e),
			Updated: p.TimestampFor(e),
			Content: Content[T]{Value: p.Representation(e)},
		})
	}

	return Feed[T]{
		ID:    p.FeedName(),
		Title: p.FeedName(),
		Generator: Generator{
			Name:    p.ProviderName(),
			URI:     p.FeedURL(),
			Version: p.ProviderVersion(),
		},
		Updated: pg.Updated,
		Entries: entries,
		Links:   BuildLinks(pg.Number, p.PageSize(), pg.Complete),
	}
}
