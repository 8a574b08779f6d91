package commentator

import "time"

// SiteConfig holds all configuration for a Commentator site. Values are
// resolved once at process start (see cmd/commentator) and passed into New;
// nothing reads the environment after startup.
type SiteConfig struct {
	Name        string // Site name (default "The Commentator")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Default byline for news items without an author

	Addr string // Listen address (default ":3000")

	MongoURI    string // Content store connection string
	MongoDBName string // Content store database name (default "commentator")

	// Beta gate credentials. If either is empty the gate fails closed and
	// every non-asset request is rejected.
	GateUser string
	GatePass string

	OpenAIKey     string // Key for the generation proxies; requests fail with 500 when empty
	OpenAIBaseURL string // Override for tests (default "https://api.openai.com/v1")

	ToolRequestsPerMinute int // Per-IP budget for the generation endpoints (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "The Commentator"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MongoDBName == "" {
		c.MongoDBName = "commentator"
	}
	if c.Author == "" {
		c.Author = "The Commentator"
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.ToolRequestsPerMinute == 0 {
		c.ToolRequestsPerMinute = 10
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

const mongoConnectTimeout = 10 * time.Second
