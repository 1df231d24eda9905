package parser

import "github.com/docquery/internal/document"

// Extractor turns a source file into per-page records.
type Extractor interface {
	// Extract returns one PageRecord per page of the file, in page order,
	// with category PAGE_CONTENT and whitespace-trimmed text.
	Extract(filePath string) ([]document.PageRecord, error)
}
