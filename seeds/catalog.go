package seeds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/actuallystonmai/cineai/internal/domain"
	"github.com/google/uuid"
)

const (
	catalogSeed = 42
	catalogSize = 10
)

// movieNamespace scopes the UUIDv5 ids of placeholder movies.
var movieNamespace = uuid.MustParse("6f1c7f4e-3b0a-4d5e-9a43-2f1f0c7e8b11")

var genres = []string{"Ação", "Drama", "Comédia", "Suspense", "Ficção científica"}

var titles = map[string][]string{
	"Ação": {
		"Die Hard", "Mad Max: Fury Road", "John Wick", "The Dark Knight",
		"Gladiator", "Top Gun: Maverick", "The Raid", "Casino Royale",
	},
	"Drama": {
		"The Shawshank Redemption", "Forrest Gump", "The Godfather",
		"Schindler's List", "Parasite", "Moonlight", "Whiplash", "The Green Mile",
	},
	"Comédia": {
		"Superbad", "The Hangover", "Bridesmaids", "Hot Fuzz",
		"Groundhog Day", "The Grand Budapest Hotel", "Anchorman", "Borat",
	},
	"Suspense": {
		"Se7en", "Gone Girl", "Zodiac", "Prisoners",
		"Sicario", "Nightcrawler", "Shutter Island", "Oldboy",
	},
	"Ficção científica": {
		"Blade Runner 2049", "Interstellar", "The Matrix", "Arrival",
		"Dune", "Ex Machina", "Alien", "Inception",
	},
}

// Catalog is the static mock recommendation source. It answers every prompt
// with the same placeholder list.
type Catalog struct {
	movies []domain.Movie
	logger *slog.Logger
}

func NewCatalog(logger *slog.Logger) *Catalog {
	rng := rand.New(rand.NewSource(catalogSeed))
	return &Catalog{
		movies: buildMovies(rng, catalogSize),
		logger: logger.With("component", "mock"),
	}
}

// Movies returns a copy of the placeholder list.
func (c *Catalog) Movies() []domain.Movie {
	out := make([]domain.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Recommend ignores the prompt and returns {"filmes": [...]}.
func (c *Catalog) Recommend(ctx context.Context, prompt string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "serving mock recommendations", slog.Int("count", len(c.movies)))

	body, err := json.Marshal(domain.RecommendationEnvelope{Filmes: c.movies})
	if err != nil {
		return nil, fmt.Errorf("marshal mock recommendations: %w", err)
	}
	return body, nil
}

func buildMovies(rng *rand.Rand, n int) []domain.Movie {
	base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	movies := make([]domain.Movie, 0, n)

	for i := 0; i < n; i++ {
		primary := genres[i%len(genres)]
		titleList := titles[primary]
		title := titleList[(i/len(genres))%len(titleList)]

		movies = append(movies, domain.Movie{
			ID:          uuid.NewSHA1(movieNamespace, []byte(title)).String(),
			Name:        title,
			Stars:       ratingScore(rng),
			Genres:      pickGenres(rng, primary),
			Synopsis:    fmt.Sprintf("Um clássico de %s escolhido para a sua busca.", primary),
			ReleaseDate: base.AddDate(rng.Intn(25), rng.Intn(12), rng.Intn(28)).Format("2006-01-02"),
		})
	}
	return movies
}

// ratingScore returns a 0-10 score with one decimal, skewed towards the top
// like real vote averages.
func ratingScore(rng *rand.Rand) float64 {
	raw := 10 * math.Sqrt(rng.Float64())
	if raw < 1 {
		raw = 1
	}
	return math.Round(raw*10) / 10
}

func pickGenres(rng *rand.Rand, primary string) []string {
	picked := []string{primary}
	extra := rng.Intn(3)
	for _, idx := range rng.Perm(len(genres)) {
		if len(picked) > extra {
			break
		}
		if genres[idx] != primary {
			picked = append(picked, genres[idx])
		}
	}
	return picked
}
