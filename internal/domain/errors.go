package domain

import "errors"

var (
	ErrPromptRequired      = errors.New("prompt is required")
	ErrUnsupportedEnvelope = errors.New("response is neither a movie array nor a filmes envelope")
	ErrMalformedResponse   = errors.New("recommendation source returned malformed JSON")
)
