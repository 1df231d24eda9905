// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/docquery/internal/document"
)

// extractPDF extracts per-page text from a PDF file using go-fitz (MuPDF)
// API reference: https://pkg.go.dev/github.com/gen2brain/go-fitz
func extractPDF(filePath string) ([]document.PageRecord, error) {
	// New creates a new Document from a file path
	doc, err := fitz.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	base := filepath.Base(filePath)
	numPages := doc.NumPage()

	records := make([]document.PageRecord, 0, numPages)
	for i := 0; i < numPages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			// Log error but continue with other pages
			log.Printf("extractPDF: file=%s page=%d extraction failed: %v", base, i+1, err)
			continue
		}
		records = append(records, document.PageRecord{
			File:     base,
			Pages:    []int{i + 1},
			Category: document.PageContent,
			Text:     strings.TrimSpace(pageText),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no text extracted from PDF: %s", filePath)
	}

	return records, nil
}
