package fields

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nesmachny/translio"
)

// IgnoredTags contains HTML tags whose content is never translatable.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// HTMLExtractor flattens page-builder HTML blobs into per-segment candidate
// fields. Each distinct text node becomes one field whose name embeds the
// segment's content fingerprint, so an edited segment surfaces as a new
// missing field while unchanged siblings stay fresh.
type HTMLExtractor struct {
	ignoredTags map[string]bool
}

// NewHTMLExtractor creates an extractor with the default ignored tags.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{ignoredTags: IgnoredTags}
}

// NewHTMLExtractorWithIgnoredTags creates an extractor overriding the ignored tags.
func NewHTMLExtractorWithIgnoredTags(tags []string) *HTMLExtractor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLExtractor{ignoredTags: ignored}
}

// Extract walks the blob's DOM and returns one candidate field per distinct
// text segment, in document order. Elements carrying a data-no-translate
// attribute are skipped along with their subtrees.
func (e *HTMLExtractor) Extract(objectID, objectType, blob string) ([]translio.SourceField, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blob))
	if err != nil {
		return nil, err
	}

	var out []translio.SourceField
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if e.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				hash := translio.Fingerprint(text)
				if !seen[hash] {
					seen[hash] = true
					out = append(out, translio.SourceField{
						ObjectID:   objectID,
						ObjectType: objectType,
						FieldName:  "html:" + hash[:12],
						Value:      text,
						Context:    segmentContext(n),
					})
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, root := range doc.Nodes {
		walk(root)
	}
	return out, nil
}

// segmentContext derives a provider hint from the enclosing markup.
func segmentContext(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(p.Data) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return "Heading"
		case "a":
			return "Link text"
		case "button":
			return "Button label"
		case "li":
			return "List item"
		case "th", "td":
			return "Table cell"
		case "figcaption":
			return "Image caption"
		}
	}
	return ""
}
