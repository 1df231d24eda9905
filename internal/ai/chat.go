// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"context"
)

// Message is one entry of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient generates a completion from an ordered list of messages.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
