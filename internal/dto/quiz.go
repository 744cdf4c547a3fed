package dto

import (
	"encoding/json"
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /generate_quiz
// @Description Request body for generating a quiz from a Wikipedia article
type GenerateQuizRequest struct {
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// GenerateQuizResponse is returned after a successful generation
// @Description Freshly generated quiz with article metadata
type GenerateQuizResponse struct {
	ID          string             `json:"id"`
	URL         string             `json:"url"`
	Title       string             `json:"title"`
	Sections    []string           `json:"sections"`
	KeyEntities domain.KeyEntities `json:"key_entities"`
	// Quiz is the unwrapped quiz body, keys kept in upstream order.
	Quiz json.RawMessage `json:"quiz" swaggertype:"object"`
}

// HistoryItemResponse is one entry of GET /history
type HistoryItemResponse struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Title         *string    `json:"title"`
	DateGenerated *time.Time `json:"date_generated"`
}

// QuizDetailResponse is returned by GET /quiz/{id}
// @Description Stored quiz with the scraped source text
type QuizDetailResponse struct {
	ID             string          `json:"id"`
	URL            string          `json:"url"`
	Title          *string         `json:"title"`
	DateGenerated  time.Time       `json:"date_generated"`
	ScrapedContent *string         `json:"scraped_content"`
	Quiz           json.RawMessage `json:"quiz" swaggertype:"object"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewHistoryItems converts history entries into their response shape
func NewHistoryItems(entries []domain.HistoryEntry) []HistoryItemResponse {
	items := make([]HistoryItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItemResponse{
			ID:            e.ID,
			URL:           e.URL,
			Title:         e.Title,
			DateGenerated: e.DateGenerated,
		})
	}
	return items
}
