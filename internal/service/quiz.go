package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/normalize"
	"wiki-quiz/internal/payload"
	"wiki-quiz/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, url string) (*dto.GenerateQuizResponse, error)
	History(ctx context.Context) ([]dto.HistoryItemResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	scraper   domain.ArticleScraper
	generator domain.QuizGenerator
	cache     QuizCacheService
	validator *validation.Validator
	cfg       *config.Config
	group     singleflight.Group
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	scraper domain.ArticleScraper,
	generator domain.QuizGenerator,
	cache QuizCacheService,
	cfg *config.Config,
) QuizService {
	if cache == nil {
		cache = NewQuizCacheService(nil, 0)
	}
	return &quizService{
		repo:      repo,
		scraper:   scraper,
		generator: generator,
		cache:     cache,
		validator: validation.NewValidator(),
		cfg:       cfg,
	}
}

// GenerateQuiz scrapes the article, asks the generator for a quiz, and stores
// the result under the article URL.
func (s *quizService) GenerateQuiz(ctx context.Context, url string) (*dto.GenerateQuizResponse, error) {
	if errs := s.validator.ValidateArticleURL(url); len(errs) > 0 {
		return nil, domain.NewInvalidURLError(errs.First())
	}
	url = strings.TrimSpace(url)

	article, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		if errors.Is(err, domain.ErrArticleUnreachable) {
			return nil, domain.NewUpstreamUnavailableError("Failed to fetch data from Wikipedia (network error)", err)
		}
		return nil, domain.NewScrapeError("Scraping failed", err)
	}
	if utf8.RuneCountInString(article.Content) < s.cfg.Scraper.MinContentLength {
		return nil, domain.NewInsufficientContentError()
	}

	raw, err := s.generator.GenerateQuiz(ctx, article)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.NewLLMServiceError(err)
	}

	quizData, err := json.Marshal(normalize.UnwrapToQuestions(raw))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	saved, err := s.repo.SaveByURL(ctx, domain.NewStoredQuiz(article, quizData))
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.NewPersistenceError("Database write failed", err)
	}

	if err := s.cache.Invalidate(ctx, saved.ID); err != nil {
		logger.Get().Warn("Failed to invalidate quiz cache", zap.String("quiz_id", saved.ID), zap.Error(err))
	}

	logger.Get().Info("Quiz generated",
		zap.String("quiz_id", saved.ID),
		zap.String("url", saved.URL),
		zap.Int("content_length", len(article.Content)),
	)

	sections := article.Sections
	if sections == nil {
		sections = []string{}
	}
	return &dto.GenerateQuizResponse{
		ID:          saved.ID,
		URL:         saved.URL,
		Title:       article.Title,
		Sections:    sections,
		KeyEntities: article.KeyEntities,
		Quiz:        saved.QuizData,
	}, nil
}

// History lists every stored quiz, oldest first
func (s *quizService) History(ctx context.Context) ([]dto.HistoryItemResponse, error) {
	if items, err := s.cache.GetHistory(ctx); err == nil {
		return items, nil
	} else if !errors.Is(err, ErrQuizNotCached) {
		logger.Get().Warn("History cache lookup failed", zap.Error(err))
	}

	v, err, _ := s.group.Do("history", func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		entries, err := s.repo.ListHistory(ctx)
		if err != nil {
			return nil, domain.NewInternalError("Failed to fetch history", err)
		}
		items := dto.NewHistoryItems(entries)
		if err := s.cache.PutHistory(ctx, items); err != nil {
			logger.Get().Warn("Failed to cache history", zap.Error(err))
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.HistoryItemResponse), nil
}

// GetQuiz loads one stored quiz. Concurrent lookups of the same id share a
// single database read, which outlives the caller that started it.
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	if errs := s.validator.ValidateQuizID(id); len(errs) > 0 {
		return nil, domain.NewInvalidInputError(errs.First())
	}

	if detail, err := s.cache.GetDetail(ctx, id); err == nil {
		return detail, nil
	} else if !errors.Is(err, ErrQuizNotCached) {
		logger.Get().Warn("Quiz cache lookup failed", zap.String("quiz_id", id), zap.Error(err))
	}

	v, err, shared := s.group.Do("quiz:"+id, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		stored, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, domain.NewInternalError("Error loading quiz", err)
		}
		if stored == nil {
			return nil, domain.NewQuizNotFoundError()
		}

		detail, err := newQuizDetail(stored)
		if err != nil {
			return nil, domain.NewInternalError("Error loading quiz", err)
		}
		if err := s.cache.PutDetail(ctx, detail); err != nil {
			logger.Get().Warn("Failed to cache quiz", zap.String("quiz_id", id), zap.Error(err))
		}
		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Quiz lookup shared", zap.String("quiz_id", id))
	}
	return v.(*dto.QuizDetailResponse), nil
}

// newQuizDetail re-applies wrapper stripping to the stored body, so rows
// written before unwrapping was enforced come back in the same shape.
func newQuizDetail(q *domain.StoredQuiz) (*dto.QuizDetailResponse, error) {
	decoded, err := payload.Decode(q.QuizData)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(normalize.UnwrapToQuestions(decoded))
	if err != nil {
		return nil, err
	}

	detail := &dto.QuizDetailResponse{
		ID:            q.ID,
		URL:           q.URL,
		DateGenerated: q.DateGenerated,
		Quiz:          body,
	}
	if q.Title != "" {
		title := q.Title
		detail.Title = &title
	}
	if q.ScrapedContent != "" {
		content := q.ScrapedContent
		detail.ScrapedContent = &content
	}
	return detail, nil
}
