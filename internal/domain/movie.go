package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Movie is the display record rendered as a card. It is never persisted.
type Movie struct {
	ID          string   `json:"id"`
	Name        string   `json:"nome"`
	Stars       float64  `json:"estrelas"`
	Genres      []string `json:"generos,omitempty"`
	Synopsis    string   `json:"sinopse,omitempty"`
	ReleaseDate string   `json:"data_lancamento,omitempty"`
}

// RecommendationEnvelope is the wrapped response shape: {"filmes": [...]}.
type RecommendationEnvelope struct {
	Filmes []Movie `json:"filmes"`
}

// movieWire accepts both the Portuguese keys and the English keys the
// placeholder backend used.
type movieWire struct {
	ID             json.RawMessage `json:"id"`
	Nome           *string         `json:"nome"`
	Name           *string         `json:"name"`
	Estrelas       *float64        `json:"estrelas"`
	Stars          *float64        `json:"stars"`
	Generos        []string        `json:"generos"`
	Genres         []string        `json:"genres"`
	Sinopse        *string         `json:"sinopse"`
	Synopsis       *string         `json:"synopsis"`
	DataLancamento *string         `json:"data_lancamento"`
	ReleaseDate    *string         `json:"release_date"`
}

func (m *Movie) UnmarshalJSON(data []byte) error {
	var w movieWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}

	*m = Movie{
		ID:          id,
		Name:        firstString(w.Nome, w.Name),
		Synopsis:    firstString(w.Sinopse, w.Synopsis),
		ReleaseDate: firstString(w.DataLancamento, w.ReleaseDate),
		Genres:      w.Generos,
	}
	if m.Genres == nil {
		m.Genres = w.Genres
	}
	switch {
	case w.Estrelas != nil:
		m.Stars = *w.Estrelas
	case w.Stars != nil:
		m.Stars = *w.Stars
	}
	return nil
}

// ReleaseYear returns the year of ReleaseDate, or false when it is missing
// or not an ISO date.
func (m Movie) ReleaseYear() (int, bool) {
	if m.ReleaseDate == "" {
		return 0, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, m.ReleaseDate); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// DecodeMovies decodes either a bare array of movies or the {"filmes": [...]}
// envelope.
func DecodeMovies(body []byte) ([]Movie, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrUnsupportedEnvelope
	}

	switch body[0] {
	case '[':
		var movies []Movie
		if err := json.Unmarshal(body, &movies); err != nil {
			return nil, fmt.Errorf("decode movie array: %w", err)
		}
		return movies, nil
	case '{':
		var env struct {
			Filmes *[]Movie `json:"filmes"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode movie envelope: %w", err)
		}
		if env.Filmes == nil {
			return nil, ErrUnsupportedEnvelope
		}
		return *env.Filmes, nil
	default:
		return nil, ErrUnsupportedEnvelope
	}
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode movie id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode movie id: %w", err)
	}
	return n.String(), nil
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}
