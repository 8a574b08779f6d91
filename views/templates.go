package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates is the parsed page template set. Pages are executed by file
// name ("home.html", "article.html", ...) with a Page as the root value.
var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
