// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/docquery/internal/document"
)

// FileExtractor routes a file to the appropriate format extractor based on
// its extension. It implements Extractor.
type FileExtractor struct{}

// NewFileExtractor creates the default multi-format extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract produces per-page records for a supported file.
func (e *FileExtractor) Extract(filePath string) ([]document.PageRecord, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var records []document.PageRecord
	var err error

	switch ext {
	case ".pdf":
		records, err = extractPDF(filePath)
	case ".docx":
		records, err = extractDOCX(filePath)
	case ".txt", ".md":
		records, err = extractText(filePath)
	case ".html", ".htm":
		records, err = extractHTML(filePath)
	case ".xlsx", ".xls":
		records, err = extractExcel(filePath)
	case ".eml":
		records, err = extractEmail(filePath)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	if err != nil {
		return nil, err
	}

	log.Printf("Extract: file=%s pages=%d", filePath, len(records))
	return records, nil
}

// IsSupportedFile checks if a file extension is supported
func IsSupportedFile(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	supported := []string{".pdf", ".docx", ".txt", ".md", ".html", ".htm", ".xlsx", ".xls", ".eml"}
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

// IsTemporaryFile checks if a file is a temporary file (e.g., ~$doc.docx)
func IsTemporaryFile(filePath string) bool {
	base := filepath.Base(filePath)
	if strings.HasPrefix(base, "~$") {
		return true
	}
	if strings.HasPrefix(base, "._") {
		return true
	}
	if strings.HasSuffix(base, ".tmp") {
		return true
	}
	return false
}

// singleRecord wraps a whole-file extraction into one page-1 record.
func singleRecord(filePath, text string) []document.PageRecord {
	return []document.PageRecord{{
		File:     filepath.Base(filePath),
		Pages:    []int{1},
		Category: document.PageContent,
		Text:     strings.TrimSpace(text),
	}}
}
