// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"net/http"

	"github.com/docquery/internal/queue"
)

// IngestRequest is the body of POST /api/ingest.
type IngestRequest struct {
	Folder string `json:"folder"`
}

// HandleIngest handles POST /api/ingest: it enqueues a background ingestion
// job for the given folder.
func (s *Service) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if s.jobQueue == nil {
		writeError(w, http.StatusServiceUnavailable, "job queue not available")
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = s.cfg.Ingest.Folder
	}

	job, err := queue.NewIngestFolderJob(folder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.jobQueue.Enqueue(r.Context(), job); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "job enqueued", "folder": folder})
}

// HandleRuns handles GET /api/runs, listing recent ingestion runs with their
// per-file outcomes.
func (s *Service) HandleRuns(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeError(w, http.StatusServiceUnavailable, "ingest ledger not available")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	runs, err := s.ledger.ListRuns(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}
