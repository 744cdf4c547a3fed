package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizService struct {
	QuizService
	generate func(ctx context.Context, url string) (*dto.GenerateQuizResponse, error)
}

func (s *stubQuizService) GenerateQuiz(ctx context.Context, url string) (*dto.GenerateQuizResponse, error) {
	return s.generate(ctx, url)
}

func TestBatchService_GenerateAll(t *testing.T) {
	svc := &stubQuizService{generate: func(ctx context.Context, url string) (*dto.GenerateQuizResponse, error) {
		if url == "bad" {
			return nil, domain.NewInvalidURLError("Please enter a valid Wikipedia URL")
		}
		return &dto.GenerateQuizResponse{ID: "id-" + url}, nil
	}}

	results := NewBatchService(svc, 2).GenerateAll(context.Background(), []string{"a", "bad", "c"})

	require.Len(t, results, 3)
	assert.Equal(t, BatchResult{URL: "a", QuizID: "id-a"}, results[0])
	assert.Equal(t, "bad", results[1].URL)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "id-c", results[2].QuizID)
}

func TestBatchService_RespectsConcurrency(t *testing.T) {
	var running, peak int32
	svc := &stubQuizService{generate: func(ctx context.Context, url string) (*dto.GenerateQuizResponse, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return &dto.GenerateQuizResponse{ID: url}, nil
	}}

	NewBatchService(svc, 2).GenerateAll(context.Background(), []string{"1", "2", "3", "4", "5", "6"})
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestBatchService_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := &stubQuizService{generate: func(ctx context.Context, url string) (*dto.GenerateQuizResponse, error) {
		t.Error("generate must not run after cancel")
		return nil, nil
	}}

	results := NewBatchService(svc, 0).GenerateAll(ctx, []string{"a"})
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}
