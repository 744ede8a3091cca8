package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pfrederiksen/teetime-scanner/internal/logger"
	"github.com/pfrederiksen/teetime-scanner/internal/storage"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// statusClientClosedRequest is the nginx convention for a client that
// disconnected before the response was written.
const statusClientClosedRequest = 499

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var payload teetime.ScanPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results, err := s.scans.Scan(r.Context(), payload)
	if err != nil {
		var verr *teetime.ValidationError
		switch {
		case errors.As(err, &verr):
			s.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: verr.Error(), Fields: verr.Fields})
		case r.Context().Err() != nil:
			// Client went away; the status only reaches the access log and metrics.
			s.requestLogger(r).Warn("scan cancelled by client", nil)
			w.WriteHeader(statusClientClosedRequest)
		default:
			s.requestLogger(r).Error("scan failed", nil, err)
			s.writeError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.writeJSON(w, r, http.StatusOK, results)
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.courses.List(r.Context())
	if err != nil {
		s.requestLogger(r).Error("listing courses failed", nil, err)
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, r, http.StatusOK, courses)
}

func (s *Server) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	var course teetime.Course
	if err := decodeJSON(w, r, &course); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	course, err := storage.Validate(course)
	if err == nil {
		err = s.courses.Add(r.Context(), course)
	}

	var ierr *storage.InvalidCourseError
	switch {
	case err == nil:
		s.requestLogger(r).Info("course registered", logger.Fields{"course": course.Name})
		s.writeJSON(w, r, http.StatusCreated, course)
	case errors.As(err, &ierr):
		s.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: ierr.Error(), Fields: []string{ierr.Field}})
	case errors.Is(err, storage.ErrCourseExists):
		s.writeError(w, r, http.StatusConflict, "course already exists")
	default:
		s.requestLogger(r).Error("adding course failed", nil, err)
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleRemoveCourse(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	err := s.courses.Remove(r.Context(), name)
	switch {
	case err == nil:
		s.requestLogger(r).Info("course removed", logger.Fields{"course": name})
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, storage.ErrCourseNotFound):
		s.writeError(w, r, http.StatusNotFound, "course not found")
	default:
		s.requestLogger(r).Error("removing course failed", nil, err)
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
