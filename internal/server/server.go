// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"net/http"

	"github.com/docquery/internal/config"
	"github.com/docquery/internal/ledger"
	"github.com/docquery/internal/queue"
	"github.com/docquery/internal/retrieval"
	"github.com/docquery/internal/vectordb"
)

// Service bundles the collaborators the HTTP handlers need.
type Service struct {
	answerer *retrieval.Answerer
	store    vectordb.Store
	ledger   *ledger.Ledger
	jobQueue queue.Queue
	cfg      *config.Config
}

// NewService creates the handler service. ledger and jobQueue may be nil.
func NewService(answerer *retrieval.Answerer, store vectordb.Store, ldg *ledger.Ledger, jobQueue queue.Queue, cfg *config.Config) *Service {
	return &Service{
		answerer: answerer,
		store:    store,
		ledger:   ldg,
		jobQueue: jobQueue,
		cfg:      cfg,
	}
}

// Routes builds the HTTP mux for the API.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ask", s.HandleAsk)
	mux.HandleFunc("/api/files", s.HandleFiles)
	mux.HandleFunc("/api/ingest", s.HandleIngest)
	mux.HandleFunc("/api/runs", s.HandleRuns)
	mux.HandleFunc("/api/health", HandleHealth)
	mux.HandleFunc("/ws", s.HandleWebSocket)
	return mux
}

// askOptions converts a request's tuning fields to retrieval options,
// falling back to configured defaults.
func (s *Service) askOptions(topK int, files []string) retrieval.Options {
	opts := retrieval.Options{TopK: topK, Files: files}
	if opts.TopK <= 0 {
		opts.TopK = s.cfg.Retrieval.TopK
	}
	if s.cfg.Retrieval.ScoreThreshold > 0 {
		threshold := float32(s.cfg.Retrieval.ScoreThreshold)
		opts.ScoreThreshold = &threshold
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
