// Package commentator serves The Commentator, an editorial site rendered
// from a headless content store, with two small proxy endpoints forwarding
// text and image generation requests to an external model provider. The
// whole site sits behind an HTTP Basic beta gate.
//
// The process owns no content: every page request reads a fresh snapshot
// from the external store the editorial studio writes to.
package commentator

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// App wires the store client, generation client, middleware, and routes.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content ContentSource
	AI      *OpenAI

	toolLimiter  *requestLimiter
	staticDir    string
	customRoutes []func(*App)
}

// New builds an App from resolved configuration and a connected content
// source. All collaborators are injected here; nothing reads the
// environment past this point.
func New(cfg SiteConfig, content ContentSource, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Content:   content,
		AI:        NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL),
		staticDir: "public",
	}
	a.toolLimiter = newRequestLimiter(cfg.ToolRequestsPerMinute, time.Minute)

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// Start applies custom routes and runs the server until shutdown.
func (a *App) Start() error {
	for _, fn := range a.customRoutes {
		fn(a)
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/posts/:slug", a.handleArticle)
	e.GET("/news/:slug", a.handleNewsDetail)
	e.GET("/about", a.handleStaticPage(PageAbout))
	e.GET("/contact", a.handleStaticPage(PageContact))
	e.GET("/freedom-reloaded", a.handleStaticPage(PageFreedomReloaded))
	e.GET("/ai-tools", a.handleTools)

	api := e.Group("/api", a.toolLimiter.middleware)
	api.POST("/generate-text", a.handleGenerateText)
	// The original tools page posted here; kept so nothing breaks.
	api.POST("/generate-excerpt", a.handleGenerateText)
	api.POST("/generate-image", a.handleGenerateImage)
}
