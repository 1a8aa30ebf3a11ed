package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minUsefulText is the text length below which a page is assumed to be a
// client-rendered shell rather than a real posting.
const minUsefulText = 200

// ExtractText reduces an HTML page to whitespace-normalized readable text.
// Chrome-only and boilerplate elements are stripped first.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe, form").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return normalizeWhitespace(root.Text()), nil
}

// ShouldUseBrowser reports whether the extracted text is too thin to be a
// real posting, meaning the page likely needs JavaScript rendering.
func ShouldUseBrowser(text string) bool {
	return len(text) < minUsefulText
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
