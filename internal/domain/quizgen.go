package domain

import "context"

// QuizGenerator produces a raw quiz payload for an article. The payload is
// untyped; callers unwrap and normalize it before use.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, article *Article) (any, error)
}
