package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/actuallystonmai/cineai/internal/service"
	"github.com/actuallystonmai/cineai/internal/view"
)

type Handler struct {
	service  *service.Service
	renderer *view.Renderer
	logger   *slog.Logger
}

func NewHandler(svc *service.Service, renderer *view.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		renderer: renderer,
		logger:   logger.With("component", "handler"),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes a JSON body that is already encoded.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// renders the page for f, buffered so a template failure still yields a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, f *view.Form) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, f); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
