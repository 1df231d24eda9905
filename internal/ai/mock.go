package ai

import (
	"context"
)

// MockChat returns a canned answer and records the messages it was given.
type MockChat struct {
	Answer   string
	Err      error
	Received [][]Message
}

// NewMockChat creates a mock chat client that always answers with answer.
func NewMockChat(answer string) *MockChat {
	return &MockChat{Answer: answer}
}

// Complete records the request and returns the canned answer.
func (m *MockChat) Complete(ctx context.Context, messages []Message) (string, error) {
	m.Received = append(m.Received, messages)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}
