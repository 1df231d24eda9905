package server

import (
	"net/http"
)

// fetchLimit bounds the payload scroll used to enumerate stored files.
const fetchLimit = 50

// HandleFiles handles GET /api/files requests, returning the distinct
// source file names available for the document selection UI.
func (s *Service) HandleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	files, err := s.store.ListFiles(r.Context(), fetchLimit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}
