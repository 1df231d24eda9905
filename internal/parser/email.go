// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mnako/letters"

	"github.com/docquery/internal/document"
)

// extractEmail extracts text from an EML email file as a single record
func extractEmail(filePath string) ([]document.PageRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open EML file: %w", err)
	}
	defer file.Close()

	email, err := letters.ParseEmail(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EML file: %w", err)
	}

	var builder strings.Builder

	if email.Headers.Subject != "" {
		builder.WriteString(fmt.Sprintf("Subject: %s\n", email.Headers.Subject))
	}

	if len(email.Headers.From) > 0 {
		from := email.Headers.From[0]
		sender := from.Address
		if from.Name != "" {
			sender = fmt.Sprintf("%s <%s>", from.Name, from.Address)
		}
		builder.WriteString(fmt.Sprintf("Sender: %s\n", sender))
	}

	if !email.Headers.Date.IsZero() {
		builder.WriteString(fmt.Sprintf("Date: %s\n", email.Headers.Date.Format(time.RFC3339)))
	}

	builder.WriteString("\n")

	// Prefer text body, fall back to HTML body if needed
	if email.Text != "" {
		builder.WriteString(email.Text)
	} else if email.HTML != "" {
		builder.WriteString(email.HTML)
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return nil, fmt.Errorf("no content extracted from EML: %s", filePath)
	}

	return singleRecord(filePath, result), nil
}
