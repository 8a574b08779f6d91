package commentator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/thecommentator/commentator/views"
)

const sidebarCount = 5

// BuildArticle assembles the commentary detail view model for a slug. The
// primary document and the three sidebar lists are fetched concurrently; a
// missing document (or one with no title) yields ErrNotFound, any other
// failure fails the page.
func BuildArticle(ctx context.Context, src ContentSource, slug string) (views.ArticlePage, error) {
	var (
		post     *Post
		mostRead []Post
		more     []Post
		latest   []NewsItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := src.PostBySlug(gctx, slug)
		if IsNotFound(err) {
			return nil // handled as a not-found page, not a branch failure
		}
		post = p
		return err
	})
	g.Go(func() error {
		var err error
		mostRead, err = src.RecentPosts(gctx, sidebarCount)
		return err
	})
	g.Go(func() error {
		var err error
		more, err = src.RecentPostsExcluding(gctx, slug, sidebarCount)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = src.RecentNews(gctx, sidebarCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return views.ArticlePage{}, err
	}

	if post == nil || post.Title == "" {
		return views.ArticlePage{}, ErrNotFound
	}

	sortDocs(mostRead)
	sortDocs(more)
	sortDocs(latest)

	return views.ArticlePage{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Excerpt:  post.Excerpt,
		Author:   post.Author,
		Date:     formatDate(post.PublishedAt),
		HeroURL:  heroDisplayURL(post.HeroImageURL),
		Body:     safeBody(post.Body),

		MostRead:       postLinks(mostRead),
		MoreCommentary: postLinks(more),
		LatestNews:     newsLinks(latest),
	}, nil
}

// BuildNewsDetail assembles the news detail view model for a slug. The
// cross-link sidebar points back at commentary. A news item without an
// author renders under the site's default byline.
func BuildNewsDetail(ctx context.Context, src ContentSource, slug, defaultAuthor string) (views.NewsPage, error) {
	var (
		item     *NewsItem
		mostRead []Post
		more     []NewsItem
		latest   []Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := src.NewsBySlug(gctx, slug)
		if IsNotFound(err) {
			return nil
		}
		item = n
		return err
	})
	g.Go(func() error {
		var err error
		mostRead, err = src.RecentPosts(gctx, sidebarCount)
		return err
	})
	g.Go(func() error {
		var err error
		more, err = src.RecentNewsExcluding(gctx, slug, sidebarCount)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = src.RecentPosts(gctx, sidebarCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return views.NewsPage{}, err
	}

	if item == nil || item.Title == "" {
		return views.NewsPage{}, ErrNotFound
	}

	sortDocs(mostRead)
	sortDocs(more)
	sortDocs(latest)

	author := item.Author
	if author == "" {
		author = defaultAuthor
	}

	return views.NewsPage{
		Title:       item.Title,
		Source:      item.Source,
		ExternalURL: item.ExternalURL,
		Author:      author,
		Date:        formatDate(item.PublishedAt),
		Excerpt:     item.Excerpt,
		HeroURL:     heroDisplayURL(item.HeroImageURL),
		Body:        safeBody(item.Body),

		MostRead:         postLinks(mostRead),
		MoreNews:         newsLinks(more),
		LatestCommentary: postLinks(latest),
	}, nil
}

func postLinks(posts []Post) []views.SiteLink {
	linkable := linkablePosts(posts)
	out := make([]views.SiteLink, len(linkable))
	for i, p := range linkable {
		out[i] = views.SiteLink{ID: p.ID.Hex(), Title: p.Title, Href: postHref(p.Slug)}
	}
	return out
}

func newsLinks(items []NewsItem) []views.SiteLink {
	linkable := linkableNews(items)
	out := make([]views.SiteLink, len(linkable))
	for i, n := range linkable {
		out[i] = views.SiteLink{ID: n.ID.Hex(), Title: n.Title, Href: newsHref(n.Slug)}
	}
	return out
}
