package service

import (
	"context"
	"time"

	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 2

// BatchResult reports the outcome of one URL in a batch run.
type BatchResult struct {
	URL    string
	QuizID string
	Err    error
}

// BatchService pre-generates quizzes for a list of article URLs.
type BatchService interface {
	GenerateAll(ctx context.Context, urls []string) []BatchResult
}

type batchService struct {
	quizService QuizService
	concurrency int
	logger      *zap.Logger
}

// NewBatchService creates a BatchService running at most concurrency
// generations at once.
func NewBatchService(quizService QuizService, concurrency int) BatchService {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}
	return &batchService{
		quizService: quizService,
		concurrency: concurrency,
		logger:      logger.Get(),
	}
}

// GenerateAll runs every URL through QuizService.GenerateQuiz. A failed URL
// does not stop the others; results keep the input order.
func (s *batchService) GenerateAll(ctx context.Context, urls []string) []BatchResult {
	start := time.Now()
	s.logger.Info("Starting batch quiz generation", zap.Int("urls", len(urls)), zap.Int("concurrency", s.concurrency))

	results := make([]BatchResult, len(urls))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			results[i].URL = url
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			resp, err := s.quizService.GenerateQuiz(ctx, url)
			if err != nil {
				s.logger.Warn("Batch generation failed", zap.String("url", url), zap.Error(err))
				results[i].Err = err
				return nil
			}
			results[i].QuizID = resp.ID
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("Batch quiz generation finished",
		zap.Int("succeeded", len(urls)-failed),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)),
	)
	return results
}
