package commentator

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()

	posts, err := a.Content.RecentPosts(ctx, 0)
	if err != nil {
		return err
	}
	news, err := a.Content.AllNews(ctx)
	if err != nil {
		return err
	}
	sortDocs(posts)
	sortDocs(news)

	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: base + "/"},
		{Loc: base + "/about"},
		{Loc: base + "/contact"},
		{Loc: base + "/freedom-reloaded"},
	}
	for _, p := range linkablePosts(posts) {
		urls = append(urls, sitemapURL{
			Loc:     base + postHref(p.Slug),
			LastMod: lastMod(p.PublishedAt),
		})
	}
	for _, n := range linkableNews(news) {
		urls = append(urls, sitemapURL{
			Loc:     base + newsHref(n.Slug),
			LastMod: lastMod(n.PublishedAt),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
