package parser

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/docquery/internal/document"
)

// extractHTML extracts text from an HTML file, removing script and style tags
func extractHTML(filePath string) ([]document.PageRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove script, style, and noscript tags before extracting text
	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Text()
	if text == "" {
		return nil, fmt.Errorf("no text extracted from HTML: %s", filePath)
	}

	return singleRecord(filePath, text), nil
}
