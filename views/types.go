// Package views holds the render-ready view models the page builders hand
// to the templates, plus the embedded templates themselves. Every field is
// fully resolved; templates never compute links, dates, or fallbacks.
package views

import "html/template"

// Site carries site-wide branding into every template.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Page wraps a view model with the chrome every template needs.
type Page struct {
	Site  Site
	Title string
	Data  any
}

// ArticleCard is one commentary post in a homepage list. Href is empty when
// the post has no slug yet; such cards render without a hyperlink.
type ArticleCard struct {
	ID           string
	Title        string
	Excerpt      string
	Author       string
	Date         string
	Href         string
	HeroImageURL string
}

// NewsTeaser is one news-point entry on the homepage.
type NewsTeaser struct {
	ID     string
	Title  string
	Source string
	Href   string
}

// ExternalRead is one curated link in the Feed Read / Strategic Insights rails.
type ExternalRead struct {
	ID     string
	Title  string
	Source string
	Href   string
}

// SiteLink is a minimal internal link used by sidebars and Most Read.
type SiteLink struct {
	ID    string
	Title string
	Href  string
}

// Home is the homepage view model. Each field is an independently derived
// sequence; none of them alias another's backing array.
type Home struct {
	Lead              *ArticleCard
	FeaturedTop       []ArticleCard // first two featured slots, laid out large
	FeaturedRest      []ArticleCard
	Stream            []ArticleCard
	News              []NewsTeaser
	FeedRead          []ExternalRead
	StrategicInsights []ExternalRead
	MostRead          []SiteLink
}

// ArticlePage is the commentary detail view model.
type ArticlePage struct {
	Title    string
	Subtitle string
	Excerpt  string
	Author   string
	Date     string
	HeroURL  string
	Body     template.HTML

	MostRead       []SiteLink
	MoreCommentary []SiteLink
	LatestNews     []SiteLink
}

// NewsPage is the news detail view model.
type NewsPage struct {
	Title       string
	Source      string
	ExternalURL string
	Author      string
	Date        string
	Excerpt     string
	HeroURL     string
	Body        template.HTML

	MostRead         []SiteLink
	MoreNews         []SiteLink
	LatestCommentary []SiteLink
}

// StaticPage is the view model for the singleton informational pages.
// Placeholder is set only when no body has been published, so editors can
// tell an unpublished page apart from an intentionally empty one.
type StaticPage struct {
	Headline    string
	Body        template.HTML
	Placeholder string
}

// Tools is the AI assistant page view model.
type Tools struct {
	Modes []ToolMode
}

// ToolMode is one selectable text-generation mode.
type ToolMode struct {
	Value string
	Label string
}
