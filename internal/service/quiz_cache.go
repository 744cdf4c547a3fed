package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// ErrQuizNotCached is returned on a cache miss.
var ErrQuizNotCached = errors.New("quiz not found in cache")

// QuizCacheService caches read responses so repeated lookups skip the database.
type QuizCacheService interface {
	GetDetail(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
	PutDetail(ctx context.Context, detail *dto.QuizDetailResponse) error
	GetHistory(ctx context.Context) ([]dto.HistoryItemResponse, error)
	PutHistory(ctx context.Context, items []dto.HistoryItemResponse) error
	// Invalidate drops the detail entry for id and the history list.
	Invalidate(ctx context.Context, id string) error
}

type quizCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuizCacheService creates a QuizCacheService backed by cache. A nil cache
// yields a no-op implementation.
func NewQuizCacheService(cache domain.Cache, ttl time.Duration) QuizCacheService {
	if cache == nil {
		logger.Get().Warn("QuizCacheService initialized with nil cache. Service will be no-op.")
		return &noopQuizCacheService{}
	}
	return &quizCacheServiceImpl{cache: cache, ttl: ttl}
}

func (s *quizCacheServiceImpl) GetDetail(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	var detail dto.QuizDetailResponse
	if err := s.get(ctx, cache.QuizDetailKey(id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *quizCacheServiceImpl) PutDetail(ctx context.Context, detail *dto.QuizDetailResponse) error {
	if detail == nil {
		return domain.NewInvalidInputError("cannot cache nil quiz detail")
	}
	return s.put(ctx, cache.QuizDetailKey(detail.ID), detail)
}

func (s *quizCacheServiceImpl) GetHistory(ctx context.Context) ([]dto.HistoryItemResponse, error) {
	var items []dto.HistoryItemResponse
	if err := s.get(ctx, cache.HistoryKey(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *quizCacheServiceImpl) PutHistory(ctx context.Context, items []dto.HistoryItemResponse) error {
	if items == nil {
		items = []dto.HistoryItemResponse{}
	}
	return s.put(ctx, cache.HistoryKey(), items)
}

func (s *quizCacheServiceImpl) Invalidate(ctx context.Context, id string) error {
	var errs []error
	for _, key := range []string{cache.QuizDetailKey(id), cache.HistoryKey()} {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Error("Failed to invalidate cache key", zap.Error(err), zap.String("key", key))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return domain.NewInternalError("failed to invalidate quiz cache", errors.Join(errs...))
	}
	return nil
}

func (s *quizCacheServiceImpl) get(ctx context.Context, key string, dst any) error {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz cache miss", zap.String("key", key))
			return ErrQuizNotCached
		}
		logger.Get().Error("Failed to get quiz from cache", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to get cache entry %s", key), err)
	}
	if data == "" {
		return ErrQuizNotCached
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		logger.Get().Error("Failed to unmarshal cached quiz", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to unmarshal cache entry %s", key), err)
	}
	logger.Get().Debug("Quiz cache hit", zap.String("key", key))
	return nil
}

func (s *quizCacheServiceImpl) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.NewInternalError("failed to marshal cache entry", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache quiz", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set cache entry %s", key), err)
	}
	logger.Get().Debug("Cached quiz", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// noopQuizCacheService is used when no cache is configured.
type noopQuizCacheService struct{}

func (s *noopQuizCacheService) GetDetail(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	return nil, ErrQuizNotCached
}

func (s *noopQuizCacheService) PutDetail(ctx context.Context, detail *dto.QuizDetailResponse) error {
	return nil
}

func (s *noopQuizCacheService) GetHistory(ctx context.Context) ([]dto.HistoryItemResponse, error) {
	return nil, ErrQuizNotCached
}

func (s *noopQuizCacheService) PutHistory(ctx context.Context, items []dto.HistoryItemResponse) error {
	return nil
}

func (s *noopQuizCacheService) Invalidate(ctx context.Context, id string) error {
	return nil
}
