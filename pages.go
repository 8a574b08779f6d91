package commentator

import (
	"context"
	"fmt"

	"github.com/thecommentator/commentator/views"
)

// StaticPageKey names one of the singleton informational pages. Keys are
// compile-time constants; they never come from a request.
type StaticPageKey string

const (
	PageAbout           StaticPageKey = "about"
	PageContact         StaticPageKey = "contact"
	PageFreedomReloaded StaticPageKey = "freedomReloaded"
)

var staticPageTitles = map[StaticPageKey]string{
	PageAbout:           "About",
	PageContact:         "Contact",
	PageFreedomReloaded: "Freedom Reloaded",
}

// BuildStaticPage assembles the view model for a singleton page. A page the
// editors have not created or filled in yet is not an error: the headline
// falls back to the page's default title and the body to a placeholder that
// is clearly not editorial content.
func BuildStaticPage(ctx context.Context, src ContentSource, key StaticPageKey) (views.StaticPage, error) {
	title := staticPageTitles[key]

	doc, err := src.Page(ctx, string(key))
	if err != nil && !IsNotFound(err) {
		return views.StaticPage{}, err
	}

	vm := views.StaticPage{Headline: title}
	if doc != nil && doc.Headline != "" {
		vm.Headline = doc.Headline
	}
	if doc != nil && len(doc.Body) > 0 {
		vm.Body = safeBody(doc.Body)
	} else {
		vm.Placeholder = fmt.Sprintf(
			"No %s content has been published yet. Open the studio, add body text, and publish.",
			title,
		)
	}
	return vm, nil
}
