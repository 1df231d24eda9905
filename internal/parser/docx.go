package parser

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/docquery/internal/document"
)

// extractDOCX extracts text from a DOCX file. DOCX carries no page
// information, so the whole document becomes a single page-1 record.
func extractDOCX(filePath string) ([]document.PageRecord, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX file: %w", err)
	}
	defer doc.Close()

	text := strings.TrimSpace(doc.Editable().GetContent())
	if text == "" {
		return nil, fmt.Errorf("no text extracted from DOCX: %s", filePath)
	}

	return singleRecord(filePath, text), nil
}
