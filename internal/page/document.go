// Package page turns fetched HTML into a queryable document snapshot.
package page

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Document holds everything the check groups need from a parsed page.
// It is built once per analysis run and is read-only afterwards.
type Document struct {
	// Title tag content
	Title string

	// Meta description
	MetaDescription string

	// Open Graph data, keyed by property (og:title, og:image, ...)
	OpenGraph map[string]string

	// Raw bodies of <script type="application/ld+json"> blocks, in
	// document order. Parsing is left to the structured-data checks.
	JSONLDBlocks []string

	// Headings
	H1 []string
	H2 []string

	// Per-tag element counts
	tagCounts map[string]int

	// Visible body text with whitespace collapsed to single spaces
	BodyText string

	// Visible text inside <main>, empty when the page has none
	MainText string

	// Length of the serialized markup inside <html>
	InnerHTMLLength int

	// Images lacking a non-empty alt attribute
	ImagesMissingAlt int

	// Anchors with a root-relative href ("/...")
	InternalLinks int

	// Anchors whose href mentions an about page
	AboutLinks int
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Parse builds a Document from raw HTML. The html.Parse tokenizer accepts
// arbitrary input, so malformed markup degrades to a sparse document rather
// than an error.
func Parse(rawHTML string) *Document {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// Only reachable on reader failure, which strings.Reader never hits.
		return &Document{OpenGraph: map[string]string{}, tagCounts: map[string]int{}}
	}

	doc := &Document{
		OpenGraph: make(map[string]string),
		tagCounts: make(map[string]int),
	}

	var bodyText, mainText strings.Builder
	walk(root, doc, &bodyText, false, &mainText)

	doc.BodyText = collapseWhitespace(bodyText.String())
	doc.MainText = collapseWhitespace(mainText.String())
	return doc
}

// Count returns how many elements with the given tag name the page has.
func (d *Document) Count(tag string) int {
	return d.tagCounts[tag]
}

// walk traverses the tree collecting tag counts, metadata and visible text.
func walk(n *html.Node, doc *Document, bodyText *strings.Builder, inMain bool, mainText *strings.Builder) {
	if n.Type == html.ElementNode {
		doc.tagCounts[n.Data]++

		switch n.Data {
		case "html":
			doc.InnerHTMLLength = innerHTMLLength(n)

		case "main":
			inMain = true

		case "title":
			doc.Title = strings.TrimSpace(textContent(n))

		case "meta":
			parseMeta(n, doc)

		case "script":
			if strings.EqualFold(attr(n, "type"), "application/ld+json") {
				doc.JSONLDBlocks = append(doc.JSONLDBlocks, textContent(n))
			}

		case "h1":
			if text := strings.TrimSpace(textContent(n)); text != "" {
				doc.H1 = append(doc.H1, text)
			}

		case "h2":
			if text := strings.TrimSpace(textContent(n)); text != "" {
				doc.H2 = append(doc.H2, text)
			}

		case "img":
			if strings.TrimSpace(attr(n, "alt")) == "" {
				doc.ImagesMissingAlt++
			}

		case "a":
			href := attr(n, "href")
			if strings.HasPrefix(href, "/") {
				doc.InternalLinks++
			}
			if strings.Contains(strings.ToLower(href), "about") {
				doc.AboutLinks++
			}
		}
	}

	// Collect visible text, skipping script/style bodies.
	if n.Type == html.TextNode {
		parent := n.Parent
		if parent == nil || (parent.Data != "script" && parent.Data != "style") {
			if text := strings.TrimSpace(n.Data); text != "" {
				bodyText.WriteString(text)
				bodyText.WriteString(" ")
				if inMain {
					mainText.WriteString(text)
					mainText.WriteString(" ")
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, doc, bodyText, inMain, mainText)
	}
}

func parseMeta(n *html.Node, doc *Document) {
	name := strings.ToLower(attr(n, "name"))
	property := strings.ToLower(attr(n, "property"))
	content := attr(n, "content")

	switch {
	case name == "description":
		doc.MetaDescription = content
	case strings.HasPrefix(property, "og:"):
		doc.OpenGraph[property] = content
	}
}

// innerHTMLLength measures the serialized markup inside an element. The
// text-to-HTML ratio is computed against the content of <html>, not the
// full source, mirroring how the analysis has always measured it.
func innerHTMLLength(n *html.Node) int {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render errors only surface on writer failure.
		_ = html.Render(&buf, c)
	}
	return buf.Len()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf bytes.Buffer
	collectText(n, &buf)
	return buf.String()
}

func collectText(n *html.Node, buf *bytes.Buffer) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
