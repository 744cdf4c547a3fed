// Package normalize turns quiz payloads of unknown shape into a
// domain.CanonicalQuiz. Every function here is total: malformed input
// degrades to documented defaults instead of failing.
package normalize

import (
	"wiki-quiz/internal/domain"
)

// Status tells the presentation layer which of the three states to render.
type Status int

const (
	// StatusInvalid means the payload was neither an object nor an array.
	StatusInvalid Status = iota
	// StatusEmpty means a quiz was resolved but it has no questions.
	StatusEmpty
	// StatusPopulated means at least one question was resolved.
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	}
	return "unknown"
}

// Result is the outcome of Normalize. Quiz is the zero value when Status is
// StatusInvalid.
type Result struct {
	Status Status
	Quiz   domain.CanonicalQuiz
}

// Invalid reports whether the payload violated the top-level contract.
func (r Result) Invalid() bool {
	return r.Status == StatusInvalid
}

// Normalize resolves p into a canonical quiz. A top-level array has no
// fields, so it resolves to the defaults with no questions.
func Normalize(p any) Result {
	if _, isArray := p.([]any); !isArray && !isObject(p) {
		return Result{Status: StatusInvalid}
	}

	data := Unwrap(p)
	quiz := domain.CanonicalQuiz{
		Title:       stringOr(data, titleKeys, DefaultTitle),
		Description: optionalString(data, descriptionKeys),
		Questions:   []domain.CanonicalQuestion{},
	}

	if raw, ok := lookup(data, questionsKey); ok {
		if items, ok := raw.([]any); ok {
			quiz.Questions = make([]domain.CanonicalQuestion, 0, len(items))
			for _, item := range items {
				quiz.Questions = append(quiz.Questions, NormalizeQuestion(item))
			}
		}
	}

	status := StatusEmpty
	if len(quiz.Questions) > 0 {
		status = StatusPopulated
	}
	return Result{Status: status, Quiz: quiz}
}

// NormalizeQuestion resolves one question. Non-object input yields an
// all-default question.
func NormalizeQuestion(q any) domain.CanonicalQuestion {
	options, _ := lookup(q, optionsKey)
	return domain.CanonicalQuestion{
		Text:        stringOr(q, questionTextKeys, DefaultQuestionText),
		Difficulty:  stringOr(q, difficultyKeys, DefaultDifficulty),
		Options:     resolveOptions(options),
		Answer:      stringOr(q, answerKeys, DefaultAnswer),
		Explanation: optionalString(q, explanationKeys),
	}
}
