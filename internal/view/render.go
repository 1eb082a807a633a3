package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/actuallystonmai/cineai/internal/domain"
)

const maxGenreChips = 3

//go:embed templates/*.html
var templateFS embed.FS

// Card is a movie prepared for display.
type Card struct {
	ID         string
	Name       string
	Stars      StarDisplay
	Genres     []string
	MoreGenres int
	Synopsis   string
	Year       int
}

func NewCard(m domain.Movie, scale Scale) Card {
	c := Card{
		ID:       m.ID,
		Name:     m.Name,
		Stars:    Stars(m.Stars, scale),
		Genres:   m.Genres,
		Synopsis: m.Synopsis,
	}
	if len(c.Genres) > maxGenreChips {
		c.MoreGenres = len(c.Genres) - maxGenreChips
		c.Genres = c.Genres[:maxGenreChips]
	}
	if year, ok := m.ReleaseYear(); ok {
		c.Year = year
	}
	return c
}

type page struct {
	Prompt    string
	Phase     string
	Loading   bool
	CanSubmit bool
	Empty     bool
	Cards     []Card
	Shown     string // displayed movies as JSON, posted back with the next search
}

type Renderer struct {
	tmpl  *template.Template
	scale Scale
}

func NewRenderer(scale Scale) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl, scale: scale}, nil
}

// Render writes the page for f.
func (r *Renderer) Render(w io.Writer, f *Form) error {
	p := page{
		Prompt:    f.Prompt,
		Phase:     f.Phase.String(),
		Loading:   f.Phase == PhaseLoading,
		CanSubmit: f.CanSubmit(),
		Empty:     f.Empty(),
		Cards:     make([]Card, 0, len(f.Movies)),
	}
	for _, m := range f.Movies {
		p.Cards = append(p.Cards, NewCard(m, r.scale))
	}
	if len(f.Movies) > 0 {
		shown, err := json.Marshal(f.Movies)
		if err != nil {
			return fmt.Errorf("encode displayed movies: %w", err)
		}
		p.Shown = string(shown)
	}

	if err := r.tmpl.ExecuteTemplate(w, "index.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
