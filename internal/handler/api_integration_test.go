package handler_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/payload"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/scraper"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const turingHTML = `<html><body>
<h1 id="firstHeading">Alan Turing</h1>
<div id="mw-content-text">
  <p>Alan Mathison Turing was an English mathematician, computer scientist and logician.<sup>[1]</sup></p>
  <h2>Early life[edit]</h2>
  <p>Turing was born in Maida Vale, London, and studied at King's College, Cambridge.</p>
</div>
</body></html>`

// generatorFunc adapts a function to domain.QuizGenerator.
type generatorFunc func(ctx context.Context, article *domain.Article) (any, error)

func (f generatorFunc) GenerateQuiz(ctx context.Context, article *domain.Article) (any, error) {
	return f(ctx, article)
}

// newIntegrationApp wires the real repository, scraper and service against a
// temporary SQLite file. Every request the scraper makes lands on wiki.
func newIntegrationApp(t *testing.T, wiki http.Handler, gen domain.QuizGenerator) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		DB:      config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "quiz.db")},
		Scraper: config.ScraperConfig{UserAgent: "test-agent", MinContentLength: 50},
	}
	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db, cfg.DB.Driver, database.Up))

	srv := httptest.NewServer(wiki)
	t.Cleanup(srv.Close)
	httpClient := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, srv.Listener.Addr().String())
		},
	}}

	svc := service.NewQuizService(
		repository.NewQuizDatabaseAdapter(db),
		scraper.NewWikipediaScraper(cfg.Scraper, httpClient),
		gen,
		nil,
		cfg,
	)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.NewQuizHandler(svc).RegisterRoutes(app)
	return app
}

func TestAPI_GenerateHistoryAndDetail(t *testing.T) {
	calls := 0
	gen := generatorFunc(func(ctx context.Context, article *domain.Article) (any, error) {
		calls++
		title := "Turing quiz"
		if calls > 1 {
			title = "Turing quiz v2"
		}
		return payload.Decode([]byte(`{"quiz":{"title":"` + title + `","questions":[{"question":"Where was Turing born?","options":["Maida Vale","Paris"],"answer":"Maida Vale","difficulty":"easy"}]}}`))
	})
	app := newIntegrationApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(turingHTML))
	}), gen)

	const articleURL = "http://en.wikipedia.org/wiki/Alan_Turing"

	status, body := perform(t, app, http.MethodPost, "/generate_quiz", `{"url":"`+articleURL+`"}`)
	require.Equal(t, http.StatusOK, status, body)

	var generated dto.GenerateQuizResponse
	require.NoError(t, json.Unmarshal([]byte(body), &generated))
	assert.NotEmpty(t, generated.ID)
	assert.Equal(t, "Alan Turing", generated.Title)
	assert.Equal(t, []string{"Early life"}, generated.Sections)
	assert.JSONEq(t, `{"title":"Turing quiz","questions":[{"question":"Where was Turing born?","options":["Maida Vale","Paris"],"answer":"Maida Vale","difficulty":"easy"}]}`, string(generated.Quiz))

	// Regenerating the same URL replaces the quiz but keeps the row.
	status, body = perform(t, app, http.MethodPost, "/generate_quiz", `{"url":"`+articleURL+`"}`)
	require.Equal(t, http.StatusOK, status, body)
	var regenerated dto.GenerateQuizResponse
	require.NoError(t, json.Unmarshal([]byte(body), &regenerated))
	assert.Equal(t, generated.ID, regenerated.ID)

	status, body = perform(t, app, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, status)
	var history []dto.HistoryItemResponse
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	require.Len(t, history, 1)
	assert.Equal(t, generated.ID, history[0].ID)
	require.NotNil(t, history[0].Title)
	assert.Equal(t, "Alan Turing", *history[0].Title)
	assert.NotNil(t, history[0].DateGenerated)

	status, body = perform(t, app, http.MethodGet, "/quiz/"+generated.ID, "")
	require.Equal(t, http.StatusOK, status)
	var detail dto.QuizDetailResponse
	require.NoError(t, json.Unmarshal([]byte(body), &detail))
	assert.Equal(t, articleURL, detail.URL)
	require.NotNil(t, detail.ScrapedContent)
	assert.Contains(t, *detail.ScrapedContent, "Alan Mathison Turing was an English mathematician")
	assert.Contains(t, string(detail.Quiz), `"title":"Turing quiz v2"`)
}

func TestAPI_ErrorStatuses(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, article *domain.Article) (any, error) {
		return payload.Decode([]byte(`{"questions":[]}`))
	})

	t.Run("upstream failure is 502", func(t *testing.T) {
		app := newIntegrationApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}), gen)

		status, body := perform(t, app, http.MethodPost, "/generate_quiz", `{"url":"http://en.wikipedia.org/wiki/Down"}`)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Contains(t, body, "Failed to fetch data from Wikipedia (network error)")
	})

	t.Run("short article is 422", func(t *testing.T) {
		app := newIntegrationApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<h1 id="firstHeading">Stub</h1><div id="mw-content-text"><p>Tiny.</p></div>`))
		}), gen)

		status, body := perform(t, app, http.MethodPost, "/generate_quiz", `{"url":"http://en.wikipedia.org/wiki/Stub"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.JSONEq(t, `{"detail":"Wikipedia page contains insufficient content"}`, body)
	})

	t.Run("missing content is 500", func(t *testing.T) {
		app := newIntegrationApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><p>no article here</p></body></html>`))
		}), gen)

		status, body := perform(t, app, http.MethodPost, "/generate_quiz", `{"url":"http://en.wikipedia.org/wiki/Empty"}`)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"detail":"Scraping failed: Wikipedia page content not found"}`, body)
	})

	t.Run("unknown quiz is 404", func(t *testing.T) {
		app := newIntegrationApp(t, http.NotFoundHandler(), gen)

		status, body := perform(t, app, http.MethodGet, "/quiz/01HQZX3V6ZJ9K0Y3V3X9A1B2C3", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"detail":"Quiz not found"}`, body)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		app := newIntegrationApp(t, http.NotFoundHandler(), gen)

		status, body := perform(t, app, http.MethodGet, "/history", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, body)
	})
}
