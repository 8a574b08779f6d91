package commentator

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thecommentator/commentator/views"
)

// render executes a page template into a buffer first so a template failure
// becomes a 500 instead of a half-written response.
func (a *App) render(c echo.Context, name, title string, data any) error {
	return a.renderStatus(c, http.StatusOK, name, title, data)
}

func (a *App) renderStatus(c echo.Context, code int, name, title string, data any) error {
	page := views.Page{
		Site: views.Site{
			Name:        a.Config.Name,
			URL:         a.Config.URL,
			Description: a.Config.Description,
			Author:      a.Config.Author,
		},
		Title: title,
		Data:  data,
	}

	var buf bytes.Buffer
	if err := views.Templates.ExecuteTemplate(&buf, name, page); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}
