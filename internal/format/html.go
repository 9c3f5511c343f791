// Package format converts email content into plain text suitable for LLM
// consumption.
package format

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var excessiveNewlines = regexp.MustCompile(`\n{3,}`)

// Converter strips markup from HTML content.
type Converter struct{}

// StripHTML reduces an HTML document to plain text. Script and style content
// is discarded entirely, <p> and <br> become line breaks, and HTML entities
// are decoded by the parser. Malformed input is returned as-is.
func (Converter) StripHTML(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var b strings.Builder
	collectText(doc, &b)

	return normalizeWhitespace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}

	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}

	if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "br") {
		b.WriteByte('\n')
	}
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	s = strings.Join(lines, "\n")
	s = excessiveNewlines.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
