// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Query string   `json:"query"`
	TopK  int      `json:"top_k"`
	Files []string `json:"files"`
}

// HandleAsk handles POST /api/ask requests
func (s *Service) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := s.answerer.Ask(r.Context(), req.Query, s.askOptions(req.TopK, req.Files))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
