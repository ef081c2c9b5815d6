// Package httpapi serves the ledger as a plain JSON REST API.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmynk/chamaa/internal/ledger"
	"github.com/mmynk/chamaa/internal/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the REST routes over a ledger.
type Handler struct {
	ledger *ledger.Ledger
	logger *slog.Logger
}

// New returns a Handler. A nil logger uses slog.Default().
func New(l *ledger.Ledger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ledger: l, logger: logger.With("component", "httpapi")}
}

// Register adds every REST route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admins", h.listAdmins)
	mux.HandleFunc("POST /admins", h.createAdmin)

	mux.HandleFunc("GET /groups", h.listGroups)
	mux.HandleFunc("POST /groups", h.createGroup)
	mux.HandleFunc("GET /groups/{groupId}", h.getGroup)
	mux.HandleFunc("POST /groups/{groupId}/members/{memberId}", h.addMember)
	mux.HandleFunc("GET /groups/{groupId}/contributions", h.listContributions)
	mux.HandleFunc("GET /groups/{groupId}/summary", h.groupSummary)

	mux.HandleFunc("GET /members", h.listMembers)
	mux.HandleFunc("POST /members", h.createMember)
	mux.HandleFunc("GET /members/{memberId}", h.getMember)

	mux.HandleFunc("POST /contributions", h.createContribution)

	mux.HandleFunc("GET /healthz", h.health)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into dst, rejecting fields the
// request type does not declare, then checks dst's validate tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON: trailing data after object")
	}
	return checkRequest(dst)
}

// fail writes the HTTP status matching err's kind. Store failures are
// logged and reported without detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
