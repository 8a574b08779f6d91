package commentator

import "context"

// fakeSource is an in-memory ContentSource for builder tests. It answers the
// named queries the way the store does: coarse limit handling here, all final
// ordering left to the builders.
type fakeSource struct {
	posts []Post
	news  []NewsItem
	feed  []FeedDoc
	pages map[string]*PageDoc

	err error // when set, every query fails with it
}

func limitPosts(posts []Post, limit int) []Post {
	if limit > 0 && len(posts) > limit {
		return posts[:limit]
	}
	return posts
}

func limitNews(items []NewsItem, limit int) []NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func (f *fakeSource) RecentPosts(_ context.Context, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return limitPosts(f.posts, limit), nil
}

func (f *fakeSource) PostBySlug(_ context.Context, slug string) (*Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSource) RecentPostsExcluding(_ context.Context, slug string, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Post
	for _, p := range f.posts {
		if p.Slug != slug {
			out = append(out, p)
		}
	}
	return limitPosts(out, limit), nil
}

func (f *fakeSource) AllNews(_ context.Context) ([]NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.news, nil
}

func (f *fakeSource) RecentNews(_ context.Context, limit int) ([]NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return limitNews(f.news, limit), nil
}

func (f *fakeSource) NewsBySlug(_ context.Context, slug string) (*NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.news {
		if f.news[i].Slug == slug {
			n := f.news[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSource) RecentNewsExcluding(_ context.Context, slug string, limit int) ([]NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []NewsItem
	for _, n := range f.news {
		if n.Slug != slug {
			out = append(out, n)
		}
	}
	return limitNews(out, limit), nil
}

func (f *fakeSource) AllFeedDocs(_ context.Context) ([]FeedDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.feed, nil
}

func (f *fakeSource) Page(_ context.Context, key string) (*PageDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[key]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}
