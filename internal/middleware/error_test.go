package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/fail", func(c *fiber.Ctx) error { return handlerErr })
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation errors use first message",
			err:        domain.ValidationErrors{domain.NewInvalidFormatError("url", validation.MsgURLNotWikipedia)},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"Please enter a valid Wikipedia URL"}`,
		},
		{
			name:       "quiz not found",
			err:        domain.NewQuizNotFoundError(),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"Quiz not found"}`,
		},
		{
			name:       "insufficient content",
			err:        domain.NewInsufficientContentError(),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"detail":"Wikipedia page contains insufficient content"}`,
		},
		{
			name:       "upstream unavailable",
			err:        domain.NewUpstreamUnavailableError("Failed to fetch data from Wikipedia (network error)", nil),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"detail":"Failed to fetch data from Wikipedia (network error)"}`,
		},
		{
			name:       "llm failure includes cause",
			err:        domain.NewLLMServiceError(errors.New("timeout")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"AI failed to process content: timeout"}`,
		},
		{
			name:       "invalid url",
			err:        domain.NewInvalidURLError(validation.MsgURLEmpty),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"URL cannot be empty"}`,
		},
		{
			name:       "fiber error keeps its code",
			err:        fiber.NewError(http.StatusMethodNotAllowed, "nope"),
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"detail":"nope"}`,
		},
		{
			name:       "unknown error is hidden",
			err:        errors.New("secret internals"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Unexpected server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.err)
			status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/fail", nil))
			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestValidationMiddleware_GenerateRequest(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/generate_quiz", vm.ValidateGenerateRequest(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"valid", `{"url":"https://en.wikipedia.org/wiki/Go"}`, http.StatusOK, "ok"},
		{"empty url", `{"url":"  "}`, http.StatusBadRequest, `{"detail":"URL cannot be empty"}`},
		{"foreign host", `{"url":"https://example.com"}`, http.StatusBadRequest, `{"detail":"Please enter a valid Wikipedia URL"}`},
		{"malformed body", `{"url":`, http.StatusBadRequest, `{"detail":"Invalid request body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/generate_quiz", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			status, body := doRequest(t, app, req)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestValidationMiddleware_QuizID(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/quiz/:id", vm.ValidateQuizID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalQuizID).(string))
	})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/quiz/abc", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "abc", body)

	status, _ = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/quiz/"+strings.Repeat("x", 65), nil))
	assert.Equal(t, http.StatusBadRequest, status)
}
