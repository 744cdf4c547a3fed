// Package retrieval drives the three client flows (history, quiz detail,
// generation), tracks a RequestState per flow, and recovers every failure
// into a categorized message.
package retrieval

import (
	"context"
	"sync"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/normalize"
	"wiki-quiz/internal/payload"
	"wiki-quiz/internal/validation"

	"go.uber.org/zap"
)

// QuizAPI is the transport the orchestrator drives. *client.Client
// satisfies it.
type QuizAPI interface {
	GenerateQuiz(ctx context.Context, articleURL string) (any, error)
	History(ctx context.Context) (any, error)
	GetQuiz(ctx context.Context, id string) (any, error)
}

// Selection is the quiz currently opened from history.
type Selection struct {
	ID     string
	Result normalize.Result
}

// Orchestrator owns the client-side state of the three request classes. It
// is safe for concurrent use.
type Orchestrator struct {
	api       QuizAPI
	validator *validation.Validator

	mu         sync.Mutex
	history    RequestState
	entries    []domain.HistoryEntry
	details    map[string]RequestState
	detailSeq  map[string]uint64
	selected   *Selection
	selectGen  uint64
	generation RequestState
	generated  *normalize.Result
}

// NewOrchestrator creates an Orchestrator with every request class idle.
func NewOrchestrator(api QuizAPI) *Orchestrator {
	return &Orchestrator{
		api:        api,
		validator:  validation.NewValidator(),
		history:    idle(),
		details:    make(map[string]RequestState),
		detailSeq:  make(map[string]uint64),
		generation: idle(),
	}
}

// LoadHistory fetches the history list and replaces the stored one. On
// failure the stored list is cleared and the returned error is a *Failure.
func (o *Orchestrator) LoadHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	o.mu.Lock()
	o.history = loading()
	o.mu.Unlock()

	raw, err := o.api.History(ctx)
	entries, failure := interpretHistory(raw, err)

	o.mu.Lock()
	defer o.mu.Unlock()
	if failure != nil {
		logger.Get().Debug("history fetch failed", zap.String("category", string(failure.Category)), zap.Error(err))
		o.history = failed(failure)
		o.entries = nil
		return nil, failure
	}
	o.history = succeeded()
	o.entries = entries
	return cloneEntries(entries), nil
}

func interpretHistory(raw any, err error) ([]domain.HistoryEntry, *Failure) {
	if err != nil {
		return nil, classify(err, historyMessages)
	}
	if d, ok := detailOf(raw); ok {
		return nil, newFailure(CategoryBackend, d)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, newFailure(CategoryServerOffline, MsgServerOffline)
	}
	return parseHistory(items), nil
}

// OpenQuiz fetches one stored quiz and makes it the selection. A failed
// fetch leaves the previous selection untouched. Fetches for different ids
// may overlap. For one id only the most recent request updates state, and a
// response that arrives after ClearSelection does not reopen the quiz. The
// caller always gets its own result.
func (o *Orchestrator) OpenQuiz(ctx context.Context, id string) (normalize.Result, error) {
	o.mu.Lock()
	o.detailSeq[id]++
	seq := o.detailSeq[id]
	gen := o.selectGen
	o.details[id] = loading()
	o.mu.Unlock()

	raw, err := o.api.GetQuiz(ctx, id)
	quiz, failure := interpretDetail(raw, err)

	o.mu.Lock()
	defer o.mu.Unlock()
	latest := o.detailSeq[id] == seq
	if !latest {
		logger.Get().Debug("discarding superseded quiz response", zap.String("id", id))
	}

	if failure != nil {
		logger.Get().Debug("quiz fetch failed", zap.String("id", id), zap.String("category", string(failure.Category)), zap.Error(err))
		if latest {
			o.details[id] = failed(failure)
		}
		return normalize.Result{}, failure
	}

	result := normalize.Normalize(quiz)
	if latest {
		o.details[id] = succeeded()
		if gen == o.selectGen {
			o.selected = &Selection{ID: id, Result: result}
		}
	}
	return result, nil
}

func interpretDetail(raw any, err error) (any, *Failure) {
	if err != nil {
		return nil, classify(err, detailMessages)
	}
	if d, ok := detailOf(raw); ok {
		return nil, newFailure(CategoryBackend, d)
	}
	quiz, _ := payload.Lookup(raw, "quiz")
	if !payload.Truthy(quiz) {
		return nil, newFailure(CategoryMalformedResponse, MsgDetailMalformed)
	}
	return quiz, nil
}

// Generate validates articleURL locally, then asks the backend for a new
// quiz. A rejected URL never reaches the network.
func (o *Orchestrator) Generate(ctx context.Context, articleURL string) (normalize.Result, error) {
	o.mu.Lock()
	o.generated = nil
	if errs := o.validator.ValidateArticleURL(articleURL); len(errs) > 0 {
		failure := newFailure(CategoryInvalidInput, errs.First())
		o.generation = failed(failure)
		o.mu.Unlock()
		return normalize.Result{}, failure
	}
	o.generation = loading()
	o.mu.Unlock()

	raw, err := o.api.GenerateQuiz(ctx, articleURL)
	failure := interpretGenerate(raw, err)

	o.mu.Lock()
	defer o.mu.Unlock()
	if failure != nil {
		logger.Get().Debug("quiz generation failed", zap.String("url", articleURL), zap.String("category", string(failure.Category)), zap.Error(err))
		o.generation = failed(failure)
		return normalize.Result{}, failure
	}

	result := normalize.Normalize(raw)
	o.generation = succeeded()
	o.generated = &result
	return result, nil
}

func interpretGenerate(raw any, err error) *Failure {
	if err != nil {
		return classify(err, generateMessages)
	}
	if d, ok := detailOf(raw); ok {
		return newFailure(CategoryBackend, d)
	}
	quiz, _ := payload.Lookup(raw, "quiz")
	if !payload.Truthy(quiz) {
		return newFailure(CategoryMalformedResponse, MsgGenerateMalformed)
	}
	return nil
}

// HistoryState returns the state of the history request.
func (o *Orchestrator) HistoryState() RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.history
}

// History returns the last successfully loaded list.
func (o *Orchestrator) History() []domain.HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneEntries(o.entries)
}

// DetailState returns the state for id; ids never fetched are idle.
func (o *Orchestrator) DetailState(id string) RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.details[id]; ok {
		return s
	}
	return idle()
}

// IsLoading reports whether a detail fetch for id is in flight.
func (o *Orchestrator) IsLoading(id string) bool {
	return o.DetailState(id).Loading()
}

// Selected returns the opened quiz, if any.
func (o *Orchestrator) Selected() (Selection, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.selected == nil {
		return Selection{}, false
	}
	return *o.selected, true
}

// ClearSelection closes the opened quiz. Fetches still in flight will not
// reopen it.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	o.selected = nil
	o.selectGen++
	o.mu.Unlock()
}

// GenerationState returns the state of the last generation request.
func (o *Orchestrator) GenerationState() RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generation
}

// Generated returns the quiz from the last successful generation.
func (o *Orchestrator) Generated() (normalize.Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generated == nil {
		return normalize.Result{}, false
	}
	return *o.generated, true
}

func cloneEntries(in []domain.HistoryEntry) []domain.HistoryEntry {
	if in == nil {
		return nil
	}
	out := make([]domain.HistoryEntry, len(in))
	copy(out, in)
	return out
}
