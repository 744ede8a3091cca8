package server

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error     string   `json:"error"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if body, ok := payload.(errorBody); ok && body.RequestID == "" {
		body.RequestID = RequestIDFromContext(r.Context())
		payload = body
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.requestLogger(r).Error("failed to encode response", nil, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, errorBody{Error: message})
}
