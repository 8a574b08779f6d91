package commentator

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thecommentator/commentator/views"
)

func (a *App) handleHome(c echo.Context) error {
	vm, err := BuildHome(c.Request().Context(), a.Content)
	if err != nil {
		return err
	}
	return a.render(c, "home.html", a.Config.Name, vm)
}

func (a *App) handleArticle(c echo.Context) error {
	vm, err := BuildArticle(c.Request().Context(), a.Content, c.Param("slug"))
	if IsNotFound(err) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return a.render(c, "article.html", vm.Title, vm)
}

func (a *App) handleNewsDetail(c echo.Context) error {
	vm, err := BuildNewsDetail(c.Request().Context(), a.Content, c.Param("slug"), a.Config.Author)
	if IsNotFound(err) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return a.render(c, "news.html", vm.Title, vm)
}

func (a *App) handleStaticPage(key StaticPageKey) echo.HandlerFunc {
	return func(c echo.Context) error {
		vm, err := BuildStaticPage(c.Request().Context(), a.Content, key)
		if err != nil {
			return err
		}
		return a.render(c, "static.html", vm.Headline, vm)
	}
}

func (a *App) handleTools(c echo.Context) error {
	vm := views.Tools{
		Modes: []views.ToolMode{
			{Value: string(ModeExcerpt), Label: "Excerpt / standfirst"},
			{Value: string(ModeTighten), Label: "Tighten"},
			{Value: string(ModeExpand), Label: "Expand"},
			{Value: string(ModeHeadline), Label: "Headlines"},
			{Value: string(ModeImagePrompt), Label: "Image prompt"},
		},
	}
	return a.render(c, "tools.html", "AI tools", vm)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the canonical URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}
