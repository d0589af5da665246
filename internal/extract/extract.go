// Package extract turns HTML input into Markdown text suitable for token
// counting. Counting raw markup inflates the result with tag tokens that
// never reach a model, so HTML is reduced to its content first.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// FromHTML reduces HTML content to Markdown.
//
// With a non-empty selector, only elements matching the CSS selector are
// converted. With includeAll, the whole document is converted as-is.
// Otherwise go-readability extracts the main article content first.
func FromHTML(content io.Reader, selector string, includeAll bool) (string, error) {
	if selector != "" {
		return selectedContent(content, selector)
	}
	if includeAll {
		return wholeDocument(content)
	}
	return mainContent(content)
}

// mainContent runs readability extraction and converts the result.
func mainContent(content io.Reader) (string, error) {
	// readability wants a document URL for resolving links; input arrives
	// on a pipe, so there is none
	article, err := readability.FromReader(content, &url.URL{})
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return toMarkdown(article.Content)
}

// selectedContent converts only the elements matching a CSS selector.
func selectedContent(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements match selector %q", selector)
	}

	var parts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err != nil {
			return
		}
		// re-wrap so the converter sees the element's own tag
		tag := goquery.NodeName(s)
		parts = append(parts, fmt.Sprintf("<%s>%s</%s>", tag, html, tag))
	})

	if len(parts) == 0 {
		return "", fmt.Errorf("failed to extract HTML for selector %q", selector)
	}

	return toMarkdown(strings.Join(parts, "\n"))
}

// wholeDocument converts the entire document without readability filtering.
func wholeDocument(content io.Reader) (string, error) {
	html, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}

	return toMarkdown(string(html))
}

// toMarkdown converts an HTML fragment to trimmed Markdown.
func toMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}

	return cleaned, nil
}
