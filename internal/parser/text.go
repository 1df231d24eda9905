// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/docquery/internal/document"
)

// extractText reads plain text files (.txt, .md) as a single page-1 record
func extractText(filePath string) ([]document.PageRecord, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, fmt.Errorf("no content in text file: %s", filePath)
	}

	return singleRecord(filePath, text), nil
}
