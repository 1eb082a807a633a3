package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/actuallystonmai/cineai/internal/domain"
	"github.com/actuallystonmai/cineai/internal/engine"
)

const maxBodyBytes = 1 << 20

// POST /api/recommendations
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.InfoContext(r.Context(), "rejecting recommendation request", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	body, err := h.service.Relay(r.Context(), req)
	if err != nil {
		// Missing prompt
		if errors.Is(err, domain.ErrPromptRequired) {
			writeError(w, http.StatusBadRequest, msgPromptRequired)
			return
		}
		// Engine answered with an error status
		if se, ok := engine.AsStatusError(err); ok {
			status, message := se.Status, se.Message
			if status < http.StatusBadRequest {
				status = http.StatusBadGateway
			}
			if message == "" {
				message = msgBackendFailed
			}
			writeError(w, status, message)
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeRawJSON(w, http.StatusOK, body)
}
