package domain

import (
	"context"
	"errors"
)

// ErrArticleUnreachable marks a source page that could not be fetched at all.
var ErrArticleUnreachable = errors.New("failed to fetch article")

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveByURL updates the quiz stored for the same URL, or inserts a new
	// one. The returned value carries the persisted ID.
	SaveByURL(ctx context.Context, quiz *StoredQuiz) (*StoredQuiz, error)

	// ListHistory returns every stored quiz as a history entry, oldest first
	ListHistory(ctx context.Context) ([]HistoryEntry, error)

	// GetByID retrieves a quiz by its ID. It returns nil, nil when missing.
	GetByID(ctx context.Context, id string) (*StoredQuiz, error)
}

// ArticleScraper fetches and cleans the source article for a URL.
type ArticleScraper interface {
	Scrape(ctx context.Context, url string) (*Article, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
