package commentator

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thecommentator/commentator/richtext"
)

// Post is a commentary article as held by the content store. Everything but
// the title is optional; a post without a slug can be previewed in lists but
// must never become a link target.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Subtitle     string             `bson:"subtitle,omitempty"`
	Excerpt      string             `bson:"excerpt,omitempty"`
	Author       string             `bson:"author,omitempty"`
	Slug         string             `bson:"slug,omitempty"`
	HeroImageURL string             `bson:"heroImageUrl,omitempty"`
	Body         []richtext.Block   `bson:"body,omitempty"`
	PublishedAt  time.Time          `bson:"publishedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty"`
}

// NewsItem is a news-point entry. Source and ExternalURL describe where the
// story came from; Priority lets editors pin items above the recency order.
type NewsItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Slug         string             `bson:"slug,omitempty"`
	Source       string             `bson:"source,omitempty"`
	ExternalURL  string             `bson:"externalUrl,omitempty"`
	Author       string             `bson:"author,omitempty"`
	Excerpt      string             `bson:"excerpt,omitempty"`
	HeroImageURL string             `bson:"heroImageUrl,omitempty"`
	Body         []richtext.Block   `bson:"body,omitempty"`
	Priority     *int               `bson:"priority,omitempty"`
	PublishedAt  time.Time          `bson:"publishedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty"`
}

// Feed sections. A document without a section belongs to the main feed.
const (
	SectionFeedRead          = "feedRead"
	SectionStrategicInsights = "strategicInsights"
)

// FeedDoc is an external link curated into one of the two homepage feed
// rails, partitioned by Section.
type FeedDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Source      string             `bson:"source,omitempty"`
	URL         string             `bson:"url,omitempty"`
	Section     string             `bson:"section,omitempty"`
	Priority    *int               `bson:"priority,omitempty"`
	PublishedAt time.Time          `bson:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
}

// PageDoc is a singleton static page (about, contact, freedom-reloaded),
// keyed by its logical page name.
type PageDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Page     string             `bson:"page"`
	Headline string             `bson:"headline,omitempty"`
	Body     []richtext.Block   `bson:"body,omitempty"`
}
