package scaffold

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

const descriptionClass = "day-desc"

// ExtractDescriptions returns the text content of every
// <article class="day-desc"> in the page, in document order
func ExtractDescriptions(page io.Reader) ([]string, error) {
	doc, err := html.Parse(page)
	if err != nil {
		return nil, fmt.Errorf("failed to parse puzzle page: %w", err)
	}

	var descriptions []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "article" && hasClass(n, descriptionClass) {
			var sb strings.Builder
			textContent(n, &sb)
			descriptions = append(descriptions, sb.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return descriptions, nil
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), class) {
			return true
		}
	}
	return false
}
