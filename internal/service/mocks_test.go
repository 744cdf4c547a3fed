package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveByURL(ctx context.Context, quiz *domain.StoredQuiz) (*domain.StoredQuiz, error) {
	args := m.Called(ctx, quiz)
	if fn, ok := args.Get(0).(func(context.Context, *domain.StoredQuiz) *domain.StoredQuiz); ok {
		return fn(ctx, quiz), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredQuiz), args.Error(1)
}

func (m *MockQuizRepository) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredQuiz), args.Error(1)
}

// --- MockArticleScraper ---
type MockArticleScraper struct {
	mock.Mock
}

func (m *MockArticleScraper) Scrape(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, article *domain.Article) (any, error) {
	args := m.Called(ctx, article)
	return args.Get(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.QuizRepository = (*MockQuizRepository)(nil)
var _ domain.ArticleScraper = (*MockArticleScraper)(nil)
var _ domain.QuizGenerator = (*MockQuizGenerator)(nil)
var _ domain.Cache = (*MockCache)(nil)
