package handler

import (
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/actuallystonmai/cineai/internal/engine"
	"github.com/actuallystonmai/cineai/internal/service"
	"github.com/actuallystonmai/cineai/internal/view"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler *Handler
	calls   atomic.Int32
	bodies  chan string
}

// newFixture wires a handler to an engine served by engineFn.
func newFixture(t *testing.T, engineFn http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{bodies: make(chan string, 16)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		b, _ := io.ReadAll(r.Body)
		f.bodies <- string(b)
		engineFn(w, r)
	}))
	t.Cleanup(srv.Close)

	f.handler = newHandler(t, srv.URL+"/recommendations")
	return f
}

func newHandler(t *testing.T, engineURL string) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer, err := view.NewRenderer(view.ScaleTen)
	require.NoError(t, err)

	client := engine.NewClient(engineURL, 0, logger)
	return NewHandler(service.NewService(client, validator.New(), logger), renderer, logger)
}

func postJSON(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.PostRecommendations(rec, req)
	return rec
}

const interstellar = `[{"id":"1","nome":"Interstellar","estrelas":9.2,"generos":["Ficção científica"],"sinopse":"Viagem no espaço.","data_lancamento":"2014-11-05"}]`

func TestPostRecommendationsRelaysSuccess(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(interstellar))
	})

	rec := postJSON(f.handler, `{"prompt":"ficção científica épica"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, interstellar, rec.Body.String(), "body relayed unchanged")
	assert.JSONEq(t, `{"prompt":"ficção científica épica"}`, <-f.bodies)
}

func TestPostRecommendationsMissingPrompt(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	for _, body := range []string{`{}`, `{"prompt":""}`, `null`} {
		rec := postJSON(f.handler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"O campo 'prompt' é obrigatório."}`, rec.Body.String())
	}
	assert.Zero(t, f.calls.Load(), "engine must not be contacted")
}

func TestPostRecommendationsInvalidBody(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	for _, body := range []string{``, `not json`, `["drama"]`, `{"prompt":42}`} {
		rec := postJSON(f.handler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"Corpo da requisição inválido."}`, rec.Body.String())
	}
	assert.Zero(t, f.calls.Load())
}

func TestPostRecommendationsPropagatesStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantErr  string
	}{
		{"unavailable with message", http.StatusServiceUnavailable, `{"message":"modelo carregando"}`, 503, "modelo carregando"},
		{"unavailable without body", http.StatusServiceUnavailable, ``, 503, "Erro ao comunicar com o backend."},
		{"validation error", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, 422, "Erro ao comunicar com o backend."},
		{"internal error", http.StatusInternalServerError, `{"detail":"Internal Server Error"}`, 500, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			rec := postJSON(f.handler, `{"prompt":"drama"}`)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.wantErr+`"}`, rec.Body.String())
		})
	}
}

func TestPostRecommendationsMalformedEngineBody(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	rec := postJSON(f.handler, `{"prompt":"drama"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Ocorreu um erro interno no servidor."}`, rec.Body.String())
}

func TestPostRecommendationsEngineUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	engineURL := srv.URL + "/recommendations"
	srv.Close()

	rec := postJSON(newHandler(t, engineURL), `{"prompt":"drama"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Ocorreu um erro interno no servidor."}`, rec.Body.String())
}

func postForm(h *Handler, prompt string) *httptest.ResponseRecorder {
	return postFormValues(h, url.Values{"prompt": {prompt}})
}

func postFormValues(h *Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.PostPage(rec, req)
	return rec
}

func TestGetPage(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	f.handler.GetPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `data-phase="idle"`)
	assert.Contains(t, rec.Body.String(), `id="submit" disabled`)
	assert.Zero(t, f.calls.Load())
}

func TestPostPageRendersCards(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(interstellar))
	})

	rec := postForm(f.handler, "ficção científica épica")
	html := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, html, `data-phase="success"`)
	assert.Equal(t, 1, strings.Count(html, `<article class="card"`))
	assert.Contains(t, html, "<h3>Interstellar</h3>")
	assert.Equal(t, 4, strings.Count(html, `class="star full"`))
	assert.Equal(t, 1, strings.Count(html, `class="star half"`))
	assert.JSONEq(t, `{"prompt":"ficção científica épica"}`, <-f.bodies)
}

func TestPostPageEnvelopeShape(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"filmes":` + interstellar + `}`))
	})

	html := postForm(f.handler, "espaço").Body.String()
	assert.Contains(t, html, "<h3>Interstellar</h3>")
}

func TestPostPageBlankPromptSendsNothing(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(interstellar))
	})

	for _, prompt := range []string{"", "   "} {
		html := postForm(f.handler, prompt).Body.String()
		assert.Contains(t, html, `data-phase="idle"`)
		assert.Contains(t, html, `id="submit" disabled`)
	}
	assert.Zero(t, f.calls.Load())
}

func TestPostPageEngineFailureKeepsEmptyState(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rec := postForm(f.handler, "drama")
	html := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, html, `data-phase="idle"`)
	assert.Contains(t, html, "Pronto para descobrir?")
	assert.Contains(t, html, "drama</textarea>")
}

var shownInput = regexp.MustCompile(`name="shown" value="([^"]*)"`)

func TestPostPageEngineFailureKeepsDisplayedCards(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Write([]byte(interstellar))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	first := postForm(f.handler, "ficção científica épica").Body.String()
	require.Contains(t, first, "<h3>Interstellar</h3>")
	m := shownInput.FindStringSubmatch(first)
	require.Len(t, m, 2)

	rec := postFormValues(f.handler, url.Values{
		"prompt": {"drama"},
		"shown":  {html.UnescapeString(m[1])},
	})
	page := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.Contains(t, page, `data-phase="success"`)
	assert.Contains(t, page, "<h3>Interstellar</h3>")
	assert.NotContains(t, page, "Pronto para descobrir?")
	assert.Contains(t, page, "drama</textarea>")
	assert.Regexp(t, shownInput, page)
}

func TestPostPageIgnoresUnreadableShown(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	page := postFormValues(f.handler, url.Values{
		"prompt": {"drama"},
		"shown":  {"not json"},
	}).Body.String()

	assert.Contains(t, page, `data-phase="idle"`)
	assert.Contains(t, page, "Pronto para descobrir?")
}
