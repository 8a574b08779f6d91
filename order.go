package commentator

import (
	"math"
	"slices"
	"time"
)

// Display ordering shared by every list on the site: explicit priority first
// (lower number wins, absent priority sorts after any explicit one), then
// publication time descending, then creation time descending. The chain is
// total, so rendered order never depends on store iteration order.

type sortKey struct {
	priority    *int
	publishedAt time.Time
	createdAt   time.Time
}

type sortable interface {
	sortKey() sortKey
}

func (p Post) sortKey() sortKey {
	return sortKey{publishedAt: p.PublishedAt, createdAt: p.CreatedAt}
}

func (n NewsItem) sortKey() sortKey {
	return sortKey{priority: n.Priority, publishedAt: n.PublishedAt, createdAt: n.CreatedAt}
}

func (f FeedDoc) sortKey() sortKey {
	return sortKey{priority: f.Priority, publishedAt: f.PublishedAt, createdAt: f.CreatedAt}
}

func priorityRank(p *int) int {
	if p == nil {
		return math.MaxInt
	}
	return *p
}

func compareKeys(a, b sortKey) int {
	ra, rb := priorityRank(a.priority), priorityRank(b.priority)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	if !a.publishedAt.Equal(b.publishedAt) {
		if a.publishedAt.After(b.publishedAt) {
			return -1
		}
		return 1
	}
	if !a.createdAt.Equal(b.createdAt) {
		if a.createdAt.After(b.createdAt) {
			return -1
		}
		return 1
	}
	return 0
}

// sortDocs sorts docs in place by the site-wide display order. The sort is
// stable so equal documents keep their incoming relative order.
func sortDocs[T sortable](docs []T) {
	slices.SortStableFunc(docs, func(a, b T) int {
		return compareKeys(a.sortKey(), b.sortKey())
	})
}

// partitionFeed splits feed documents into the two homepage rails. Every
// document lands in exactly one rail; a missing or unknown section tag means
// the main feed. Both results are freshly allocated.
func partitionFeed(docs []FeedDoc) (feedRead, strategicInsights []FeedDoc) {
	feedRead = make([]FeedDoc, 0, len(docs))
	strategicInsights = make([]FeedDoc, 0)
	for _, d := range docs {
		if d.Section == SectionStrategicInsights {
			strategicInsights = append(strategicInsights, d)
		} else {
			feedRead = append(feedRead, d)
		}
	}
	return feedRead, strategicInsights
}

// linkablePosts returns the posts that may carry a hyperlink, preserving
// order. Posts without a slug are previews only and are dropped here.
func linkablePosts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Slug != "" {
			out = append(out, p)
		}
	}
	return out
}

func linkableNews(items []NewsItem) []NewsItem {
	out := make([]NewsItem, 0, len(items))
	for _, n := range items {
		if n.Slug != "" {
			out = append(out, n)
		}
	}
	return out
}
