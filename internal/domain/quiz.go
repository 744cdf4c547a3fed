package domain

import (
	"encoding/json"
	"time"
)

// CanonicalQuiz is the single trusted quiz representation produced by
// normalization. Title is never empty.
type CanonicalQuiz struct {
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Questions   []CanonicalQuestion `json:"questions"`
}

// CanonicalQuestion is one fully resolved question. Options always holds at
// least one entry.
type CanonicalQuestion struct {
	Text        string   `json:"text"`
	Difficulty  string   `json:"difficulty"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation *string  `json:"explanation,omitempty"`
}

// HistoryEntry is one row of the generation history list.
type HistoryEntry struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Title         *string    `json:"title"`
	DateGenerated *time.Time `json:"date_generated"`
}

// KeyEntities groups the naive named entities pulled from an article.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// Article is the scraped, cleaned content of a source page.
type Article struct {
	URL         string
	Title       string
	Content     string
	Sections    []string
	KeyEntities KeyEntities
}

// StoredQuiz is a persisted generation result. QuizData holds the unwrapped
// quiz body exactly as produced upstream.
type StoredQuiz struct {
	ID             string
	URL            string
	Title          string
	DateGenerated  time.Time
	ScrapedContent string
	QuizData       json.RawMessage
}

// NewStoredQuiz creates a StoredQuiz for a freshly generated quiz.
func NewStoredQuiz(article *Article, quizData json.RawMessage) *StoredQuiz {
	return &StoredQuiz{
		URL:            article.URL,
		Title:          article.Title,
		DateGenerated:  time.Now().UTC(),
		ScrapedContent: article.Content,
		QuizData:       quizData,
	}
}

// HistoryEntry projects the stored row onto the history list shape.
func (q *StoredQuiz) HistoryEntry() HistoryEntry {
	entry := HistoryEntry{ID: q.ID, URL: q.URL}
	if q.Title != "" {
		title := q.Title
		entry.Title = &title
	}
	if !q.DateGenerated.IsZero() {
		date := q.DateGenerated
		entry.DateGenerated = &date
	}
	return entry
}

// Validate validates the stored quiz before persistence
func (q *StoredQuiz) Validate() error {
	if q.URL == "" {
		return NewValidationError("url is required")
	}
	if len(q.QuizData) == 0 {
		return NewValidationError("quiz data is required")
	}
	if !json.Valid(q.QuizData) {
		return NewValidationError("quiz data must be valid JSON")
	}
	return nil
}
