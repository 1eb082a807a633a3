package handler

import (
	"log/slog"
	"net/http"

	"github.com/actuallystonmai/cineai/internal/domain"
	"github.com/actuallystonmai/cineai/internal/view"
)

// GET /
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, &view.Form{})
}

// POST /
func (h *Handler) PostPage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.InfoContext(r.Context(), "bad form submission", slog.String("error", err.Error()))
		h.render(w, r, &view.Form{})
		return
	}

	form := &view.Form{}
	if shown := r.PostFormValue("shown"); shown != "" {
		movies, err := domain.DecodeMovies([]byte(shown))
		if err != nil {
			h.logger.InfoContext(r.Context(), "discarding displayed movies", slog.String("error", err.Error()))
		} else {
			form.Show(movies)
		}
	}

	prompt := r.PostFormValue("prompt")
	if err := form.Submit(prompt); err != nil {
		h.render(w, r, form)
		return
	}

	movies, err := h.service.Movies(r.Context(), prompt)
	if err != nil {
		h.logger.WarnContext(r.Context(), "recommendations unavailable for page", slog.String("error", err.Error()))
		form.Fail()
		h.render(w, r, form)
		return
	}

	if err := form.Resolve(movies); err != nil {
		h.logger.ErrorContext(r.Context(), "resolve form", slog.String("error", err.Error()))
	}
	h.render(w, r, form)
}
