package commentator

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = mongo.ErrNoDocuments

// Content store collections. The editorial studio owns writes; this site
// only ever reads the current snapshot.
const (
	colPosts    = "posts"
	colNews     = "newsItems"
	colFeedDocs = "feedDocs"
	colPages    = "pages"
)

// ContentSource is the fixed query surface the page builders depend on.
// Each method is one named query; parameters bind only a slug or a limit,
// never free-form filter text. Implemented by Store and by test fakes.
type ContentSource interface {
	RecentPosts(ctx context.Context, limit int) ([]Post, error)
	PostBySlug(ctx context.Context, slug string) (*Post, error)
	RecentPostsExcluding(ctx context.Context, slug string, limit int) ([]Post, error)
	AllNews(ctx context.Context) ([]NewsItem, error)
	RecentNews(ctx context.Context, limit int) ([]NewsItem, error)
	NewsBySlug(ctx context.Context, slug string) (*NewsItem, error)
	RecentNewsExcluding(ctx context.Context, slug string, limit int) ([]NewsItem, error)
	AllFeedDocs(ctx context.Context) ([]FeedDoc, error)
	Page(ctx context.Context, key string) (*PageDoc, error)
}

// Store reads editorial documents from the external content database.
// It never retries, caches, or mutates; store errors propagate to the caller.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to the content database and verifies the connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(mongoConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect content store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping content store: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects from the content database.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// recencySort is the store-side coarse ordering for "most recent" queries.
// Final display order (including the priority rule) is applied in Go by the
// shared helpers, since an ascending index sort would rank absent priorities
// first instead of last.
var recencySort = bson.D{
	{Key: "publishedAt", Value: -1},
	{Key: "createdAt", Value: -1},
}

// RecentPosts returns up to limit posts, newest first.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	return findPosts(ctx, s.db.Collection(colPosts), bson.D{}, limit)
}

// PostBySlug returns the single post with exactly the given slug.
// The slug is bound verbatim; it is never parsed or normalized here.
func (s *Store) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	err := s.db.Collection(colPosts).FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecentPostsExcluding returns up to limit posts, newest first, skipping the
// post with the given slug.
func (s *Store) RecentPostsExcluding(ctx context.Context, slug string, limit int) ([]Post, error) {
	filter := bson.D{{Key: "slug", Value: bson.D{{Key: "$ne", Value: slug}}}}
	return findPosts(ctx, s.db.Collection(colPosts), filter, limit)
}

// AllNews returns every news item.
func (s *Store) AllNews(ctx context.Context) ([]NewsItem, error) {
	return findNews(ctx, s.db.Collection(colNews), bson.D{}, 0)
}

// RecentNews returns up to limit news items, newest first.
func (s *Store) RecentNews(ctx context.Context, limit int) ([]NewsItem, error) {
	return findNews(ctx, s.db.Collection(colNews), bson.D{}, limit)
}

// NewsBySlug returns the single news item with exactly the given slug.
func (s *Store) NewsBySlug(ctx context.Context, slug string) (*NewsItem, error) {
	var n NewsItem
	err := s.db.Collection(colNews).FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// RecentNewsExcluding returns up to limit news items, newest first, skipping
// the item with the given slug.
func (s *Store) RecentNewsExcluding(ctx context.Context, slug string, limit int) ([]NewsItem, error) {
	filter := bson.D{{Key: "slug", Value: bson.D{{Key: "$ne", Value: slug}}}}
	return findNews(ctx, s.db.Collection(colNews), filter, limit)
}

// AllFeedDocs returns every curated feed document; the home builder
// partitions and orders them.
func (s *Store) AllFeedDocs(ctx context.Context) ([]FeedDoc, error) {
	cur, err := s.db.Collection(colFeedDocs).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("query feed docs: %w", err)
	}
	var docs []FeedDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feed docs: %w", err)
	}
	return docs, nil
}

// Page returns the singleton static page document for the given logical key.
func (s *Store) Page(ctx context.Context, key string) (*PageDoc, error) {
	var p PageDoc
	err := s.db.Collection(colPages).FindOne(ctx, bson.D{{Key: "page", Value: key}}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func findPosts(ctx context.Context, col *mongo.Collection, filter bson.D, limit int) ([]Post, error) {
	opts := options.Find().SetSort(recencySort)
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	var docs []Post
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return docs, nil
}

func findNews(ctx context.Context, col *mongo.Collection, filter bson.D, limit int) ([]NewsItem, error) {
	opts := options.Find().SetSort(recencySort)
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query news items: %w", err)
	}
	var docs []NewsItem
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode news items: %w", err)
	}
	return docs, nil
}

// IsNotFound reports whether err is the store's missing-document condition,
// as opposed to a transport or decode failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
