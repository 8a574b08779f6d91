package commentator

import (
	"html/template"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/thecommentator/commentator/richtext"
)

// safeBody renders a rich body as template-safe HTML. The richtext renderer
// escapes all document text, so this is the only trust boundary crossing.
func safeBody(blocks []richtext.Block) template.HTML {
	return template.HTML(richtext.HTML(blocks))
}

// formatDate renders a publication timestamp the way bylines show it
// ("Jan 2, 2026"). A missing timestamp renders as the empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Hero images are referenced as raw CDN asset URLs; display URLs pin the
// editorial crop so every hero renders at the same aspect ratio.
const (
	heroWidth  = 1600
	heroHeight = 900
)

// heroDisplayURL derives the 16:9 crop-to-fill display URL for an image
// reference. An empty or unparseable reference yields no hero at all.
func heroDisplayURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("w", strconv.Itoa(heroWidth))
	q.Set("h", strconv.Itoa(heroHeight))
	q.Set("fit", "crop")
	u.RawQuery = q.Encode()
	return u.String()
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// postHref returns the site-relative link for a post, or "" when the post
// has no slug and must not be linked.
func postHref(slug string) string {
	if slug == "" {
		return ""
	}
	return "/posts/" + slug
}

func newsHref(slug string) string {
	if slug == "" {
		return ""
	}
	return "/news/" + slug
}

// feedHref is the destination of a feed rail entry. Curated links without a
// URL fall back to a dead anchor rather than disappearing from the rail.
func feedHref(rawURL string) string {
	if strings.TrimSpace(rawURL) == "" {
		return "#"
	}
	return rawURL
}
