package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/actuallystonmai/cineai/internal/domain"
	"github.com/actuallystonmai/cineai/internal/engine"
	"github.com/go-playground/validator/v10"
)

// Source produces recommendations for a prompt as a raw JSON body.
type Source interface {
	Recommend(ctx context.Context, prompt string) (json.RawMessage, error)
}

type Service struct {
	source   Source
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(source Source, validate *validator.Validate, logger *slog.Logger) *Service {
	return &Service{
		source:   source,
		validate: validate,
		logger:   logger.With("component", "service"),
	}
}

// Relay checks that a prompt is present and forwards it to the source
// unchanged. The source's body is returned as is.
func (s *Service) Relay(ctx context.Context, req domain.RecommendationRequest) (json.RawMessage, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, domain.ErrPromptRequired
	}

	start := time.Now()
	body, err := s.source.Recommend(ctx, req.Prompt)
	if err != nil {
		if se, ok := engine.AsStatusError(err); ok {
			s.logger.WarnContext(ctx, "recommendation source rejected prompt",
				slog.Int("status", se.Status),
				slog.String("message", se.Message))
		} else {
			s.logger.ErrorContext(ctx, "recommendation source failed", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "recommendations relayed",
		slog.Int("prompt_len", len(req.Prompt)),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)))
	return body, nil
}

// Movies relays prompt and decodes the answer for rendering.
func (s *Service) Movies(ctx context.Context, prompt string) ([]domain.Movie, error) {
	body, err := s.Relay(ctx, domain.RecommendationRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	movies, err := domain.DecodeMovies(body)
	if err != nil {
		s.logger.ErrorContext(ctx, "cannot decode recommendations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return movies, nil
}
