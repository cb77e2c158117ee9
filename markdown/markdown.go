// Package markdown renders the constrained Markdown subset allowed in
// tenant-authored text blocks (about, hero, contact) as a templ component.
// Input is HTML-escaped before any formatting is applied, so tenant text
// can never inject markup.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic = regexp.MustCompile(`\*([^*]+)\*`)
	reLink   = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) {
	lines := strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n")

	inList := false
	var paragraph []string

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		buf.WriteString("<p>")
		buf.WriteString(inline(strings.Join(paragraph, " ")))
		buf.WriteString("</p>")
		paragraph = paragraph[:0]
	}
	closeList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushParagraph()
			closeList()
		case strings.HasPrefix(trimmed, "### "):
			flushParagraph()
			closeList()
			buf.WriteString("<h4>" + inline(trimmed[4:]) + "</h4>")
		case strings.HasPrefix(trimmed, "## "):
			flushParagraph()
			closeList()
			buf.WriteString("<h3>" + inline(trimmed[3:]) + "</h3>")
		case strings.HasPrefix(trimmed, "- "):
			flushParagraph()
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + inline(trimmed[2:]) + "</li>")
		default:
			closeList()
			paragraph = append(paragraph, trimmed)
		}
	}
	flushParagraph()
	closeList()
}

// inline escapes raw text and then applies bold, italic, and link spans.
func inline(s string) string {
	s = html.EscapeString(s)
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reItalic.ReplaceAllString(s, "<em>$1</em>")
	s = reLink.ReplaceAllString(s, `<a href="$2" rel="noopener">$1</a>`)
	return s
}
