package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Adapter extracts checkable ad copy from one source format
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter handles the given content type
	CanHandle(contentType string) bool

	// Text extracts the plain ad copy to run through the pipeline
	Text(content string) (string, error)
}

// Registry selects the adapter for a content type, falling back to
// plain text for anything unrecognized.
type Registry struct {
	adapters []Adapter
	fallback Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{NewHTMLAdapter()},
		fallback: NewPlainTextAdapter(),
	}
}

// ForContentType returns the first adapter handling contentType
func (r *Registry) ForContentType(contentType string) Adapter {
	for _, a := range r.adapters {
		if a.CanHandle(contentType) {
			return a
		}
	}
	return r.fallback
}

// HTMLAdapter extracts the visible copy of an ad landing page,
// skipping script, style, and other non-rendered elements.
type HTMLAdapter struct{}

// NewHTMLAdapter creates a new HTML adapter
func NewHTMLAdapter() *HTMLAdapter {
	return &HTMLAdapter{}
}

// Name returns the adapter name
func (a *HTMLAdapter) Name() string {
	return "html"
}

// CanHandle reports whether the content type is HTML
func (a *HTMLAdapter) CanHandle(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// Text parses the HTML and returns the visible text, with element
// boundaries preserved as line breaks so the segmenter sees them.
func (a *HTMLAdapter) Text(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return visibleText(doc), nil
}

// visibleText walks the node tree collecting rendered text. Block
// elements contribute a newline so independent claims stay on their
// own lines for boundary detection.
func visibleText(root *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) && buf.Len() > 0 {
			buf.WriteString("\n")
		}
	}

	walk(root)
	return strings.TrimRight(buf.String(), "\n")
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "li", "br", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
		return true
	}
	return false
}

// PlainTextAdapter passes raw text through untouched: the segmenter
// guarantees losslessness, so no trimming happens here either.
type PlainTextAdapter struct{}

// NewPlainTextAdapter creates a new plain-text adapter
func NewPlainTextAdapter() *PlainTextAdapter {
	return &PlainTextAdapter{}
}

// Name returns the adapter name
func (a *PlainTextAdapter) Name() string {
	return "plaintext"
}

// CanHandle always returns true (fallback adapter)
func (a *PlainTextAdapter) CanHandle(contentType string) bool {
	return true
}

// Text returns the content as-is
func (a *PlainTextAdapter) Text(content string) (string, error) {
	return content, nil
}
