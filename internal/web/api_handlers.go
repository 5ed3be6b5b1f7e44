package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/evcraddock/date-invite/internal/submission"
)

const (
	msgSaved       = "Date saved successfully! ❤️"
	msgSaveFailed  = "Failed to save date"
	msgNotFound    = "Date not found"
	msgInternal    = "Internal server error"
	msgInvalidJSON = "Invalid JSON body"
	msgHealthy     = "Server is running! ❤️"
)

const maxBodyBytes = 1 << 20

// response is the envelope every endpoint answers with.
type response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Count     *int        `json:"count,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, r *http.Request, msg string, code int) {
	render.Status(r, code)
	render.JSON(w, r, response{Success: false, Message: msg})
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, r *http.Request, resp response, code int) {
	resp.Success = true
	render.Status(r, code)
	render.JSON(w, r, resp)
}

// handleSaveDate validates and stores a new submission.
func (s *Server) handleSaveDate(w http.ResponseWriter, r *http.Request) {
	var p submission.Payload
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &p); err != nil {
		slog.DebugContext(r.Context(), "decoding save-date body", "error", err)
		apiError(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	sub, err := s.store.Create(r.Context(), p)
	var verr *submission.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.DebugContext(r.Context(), "rejected submission", "field", verr.Field, "reason", verr.Message)
		apiError(w, r, verr.Message, http.StatusBadRequest)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "saving submission", "error", err)
		apiError(w, r, msgSaveFailed, http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "date saved", "id", sub.ID, "date", sub.SelectedDate)
	apiJSON(w, r, response{Message: msgSaved, Data: sub}, http.StatusCreated)
}

// handleListDates returns every stored submission.
func (s *Server) handleListDates(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing submissions", "error", err)
		apiError(w, r, msgInternal, http.StatusInternalServerError)
		return
	}

	if subs == nil {
		subs = []*submission.Submission{}
	}
	count := len(subs)
	apiJSON(w, r, response{Count: &count, Data: subs}, http.StatusOK)
}

// handleGetDate returns one submission. Ids that do not parse cannot
// match anything, so they are reported as not found.
func (s *Server) handleGetDate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		slog.DebugContext(r.Context(), "get date: unparsable id", "id", chi.URLParam(r, "id"))
		apiError(w, r, msgNotFound, http.StatusNotFound)
		return
	}

	sub, err := s.store.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, submission.ErrNotFound):
		slog.DebugContext(r.Context(), "get date: not found", "id", id)
		apiError(w, r, msgNotFound, http.StatusNotFound)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "getting submission", "id", id, "error", err)
		apiError(w, r, msgInternal, http.StatusInternalServerError)
		return
	}

	apiJSON(w, r, response{Data: sub}, http.StatusOK)
}

// handleHealth reports liveness and the server clock. It does not touch
// the store.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, r, response{
		Message:   msgHealthy,
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}, http.StatusOK)
}
