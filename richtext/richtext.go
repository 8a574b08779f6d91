// Package richtext renders the content store's typed block content as HTML.
//
// Editorial bodies are stored as a flat sequence of blocks: text blocks with
// styled spans and link annotations, plus occasional inline images. The
// renderer walks that sequence once, grouping adjacent list items, and
// escapes all text on the way out.
package richtext

import (
	"bytes"
	"html"
	"strings"
)

// Block is one element of a rich body. Text blocks carry Children spans;
// image blocks carry an asset URL instead.
type Block struct {
	Key      string    `bson:"_key,omitempty" json:"_key,omitempty"`
	Type     string    `bson:"_type,omitempty" json:"_type,omitempty"`
	Style    string    `bson:"style,omitempty" json:"style,omitempty"`
	ListItem string    `bson:"listItem,omitempty" json:"listItem,omitempty"`
	Children []Span    `bson:"children,omitempty" json:"children,omitempty"`
	MarkDefs []MarkDef `bson:"markDefs,omitempty" json:"markDefs,omitempty"`
	ImageURL string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Alt      string    `bson:"alt,omitempty" json:"alt,omitempty"`
}

// Span is a run of text inside a block. Marks reference either a decorator
// ("strong", "em", "code") or the key of a MarkDef on the same block.
type Span struct {
	Key   string   `bson:"_key,omitempty" json:"_key,omitempty"`
	Text  string   `bson:"text" json:"text"`
	Marks []string `bson:"marks,omitempty" json:"marks,omitempty"`
}

// MarkDef is a block-scoped annotation, in practice always a link.
type MarkDef struct {
	Key  string `bson:"_key,omitempty" json:"_key,omitempty"`
	Type string `bson:"_type,omitempty" json:"_type,omitempty"`
	Href string `bson:"href,omitempty" json:"href,omitempty"`
}

// Render writes the HTML representation of blocks to buf.
func Render(buf *bytes.Buffer, blocks []Block) {
	inList := ""

	flushList := func() {
		switch inList {
		case "bullet":
			buf.WriteString("</ul>")
		case "number":
			buf.WriteString("</ol>")
		}
		inList = ""
	}

	for _, b := range blocks {
		if b.Type == "image" {
			flushList()
			if b.ImageURL != "" {
				buf.WriteString(`<figure><img src="` + html.EscapeString(b.ImageURL) + `" alt="` + html.EscapeString(b.Alt) + `"></figure>`)
			}
			continue
		}
		if b.Type != "" && b.Type != "block" {
			// Unknown block types are skipped rather than rendered wrong.
			continue
		}

		if b.ListItem != "" {
			if inList != b.ListItem {
				flushList()
				if b.ListItem == "number" {
					buf.WriteString("<ol>")
				} else {
					buf.WriteString("<ul>")
				}
				inList = b.ListItem
			}
			buf.WriteString("<li>")
			renderSpans(buf, b)
			buf.WriteString("</li>")
			continue
		}
		flushList()

		tag := blockTag(b.Style)
		buf.WriteString("<" + tag + ">")
		renderSpans(buf, b)
		buf.WriteString("</" + tag + ">")
	}
	flushList()
}

// HTML renders blocks and returns the result as a string.
func HTML(blocks []Block) string {
	var buf bytes.Buffer
	Render(&buf, blocks)
	return buf.String()
}

func blockTag(style string) string {
	switch style {
	case "h2", "h3", "h4", "blockquote":
		return style
	default:
		return "p"
	}
}

func renderSpans(buf *bytes.Buffer, b Block) {
	links := make(map[string]string, len(b.MarkDefs))
	for _, d := range b.MarkDefs {
		if d.Type == "link" && d.Href != "" {
			links[d.Key] = d.Href
		}
	}

	for _, s := range b.Children {
		open, close := spanTags(s.Marks, links)
		buf.WriteString(open)
		buf.WriteString(html.EscapeString(s.Text))
		buf.WriteString(close)
	}
}

// spanTags returns the opening and closing tag sequences for a span's marks.
// Closing tags are emitted in reverse order so nesting stays balanced.
func spanTags(marks []string, links map[string]string) (string, string) {
	var open strings.Builder
	var closers []string

	for _, m := range marks {
		if href, ok := links[m]; ok {
			open.WriteString(`<a href="` + html.EscapeString(href) + `"`)
			if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
				open.WriteString(` target="_blank" rel="noreferrer noopener"`)
			}
			open.WriteString(">")
			closers = append(closers, "</a>")
			continue
		}
		switch m {
		case "strong":
			open.WriteString("<strong>")
			closers = append(closers, "</strong>")
		case "em":
			open.WriteString("<em>")
			closers = append(closers, "</em>")
		case "code":
			open.WriteString("<code>")
			closers = append(closers, "</code>")
		case "underline":
			open.WriteString("<u>")
			closers = append(closers, "</u>")
		}
	}

	var close strings.Builder
	for i := len(closers) - 1; i >= 0; i-- {
		close.WriteString(closers[i])
	}
	return open.String(), close.String()
}
