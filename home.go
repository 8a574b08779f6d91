package commentator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/thecommentator/commentator/views"
)

// Homepage shape: one lead story, six featured slots, then the stream.
const (
	homePostLimit = 60
	featuredCount = 6
	streamCap     = 20
	mostReadCount = 5
)

// BuildHome assembles the homepage view model from the current store
// snapshot. The three underlying queries run concurrently; if any of them
// fails the whole page fails, never a partially filled model.
func BuildHome(ctx context.Context, src ContentSource) (views.Home, error) {
	var (
		posts []Post
		news  []NewsItem
		feed  []FeedDoc
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = src.RecentPosts(gctx, homePostLimit)
		return err
	})
	g.Go(func() error {
		var err error
		news, err = src.AllNews(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = src.AllFeedDocs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return views.Home{}, err
	}

	sortDocs(posts)
	sortDocs(news)
	sortDocs(feed)
	feedRead, strategicInsights := partitionFeed(feed)

	vm := views.Home{
		News:              newsTeasers(news),
		FeedRead:          externalReads(feedRead),
		StrategicInsights: externalReads(strategicInsights),
		MostRead:          mostReadLinks(posts),
	}

	if len(posts) > 0 {
		lead := articleCard(posts[0])
		vm.Lead = &lead
	}

	var featured []Post
	if len(posts) > 1 {
		featured = posts[1:min(len(posts), 1+featuredCount)]
	}
	split := min(len(featured), 2)
	vm.FeaturedTop = articleCards(featured[:split])
	vm.FeaturedRest = articleCards(featured[split:])

	if len(posts) > 1+featuredCount {
		stream := linkablePosts(posts[1+featuredCount:])
		if len(stream) > streamCap {
			stream = stream[:streamCap]
		}
		vm.Stream = articleCards(stream)
	} else {
		vm.Stream = []views.ArticleCard{}
	}

	return vm, nil
}

func articleCard(p Post) views.ArticleCard {
	return views.ArticleCard{
		ID:           p.ID.Hex(),
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		Author:       p.Author,
		Date:         formatDate(p.PublishedAt),
		Href:         postHref(p.Slug),
		HeroImageURL: p.HeroImageURL,
	}
}

func articleCards(posts []Post) []views.ArticleCard {
	cards := make([]views.ArticleCard, len(posts))
	for i, p := range posts {
		cards[i] = articleCard(p)
	}
	return cards
}

func newsTeasers(items []NewsItem) []views.NewsTeaser {
	out := make([]views.NewsTeaser, len(items))
	for i, n := range items {
		out[i] = views.NewsTeaser{
			ID:     n.ID.Hex(),
			Title:  n.Title,
			Source: n.Source,
			Href:   newsHref(n.Slug),
		}
	}
	return out
}

func externalReads(docs []FeedDoc) []views.ExternalRead {
	out := make([]views.ExternalRead, len(docs))
	for i, d := range docs {
		out[i] = views.ExternalRead{
			ID:     d.ID.Hex(),
			Title:  d.Title,
			Source: d.Source,
			Href:   feedHref(d.URL),
		}
	}
	return out
}

// mostReadLinks is the "Most Read" rail: the first five linkable posts in
// display order. This is a stated editorial approximation, not traffic data.
func mostReadLinks(posts []Post) []views.SiteLink {
	linkable := linkablePosts(posts)
	if len(linkable) > mostReadCount {
		linkable = linkable[:mostReadCount]
	}
	out := make([]views.SiteLink, len(linkable))
	for i, p := range linkable {
		out[i] = views.SiteLink{ID: p.ID.Hex(), Title: p.Title, Href: postHref(p.Slug)}
	}
	return out
}
