package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestQuiz_InvalidAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Quiz(normalize.Result{Status: normalize.StatusInvalid}))
	assert.Equal(t, MsgInvalidQuiz+"\n", buf.String())

	buf.Reset()
	require.NoError(t, r.Quiz(normalize.Result{Status: normalize.StatusEmpty, Quiz: domain.CanonicalQuiz{Title: "T"}}))
	assert.Equal(t, MsgNoQuestions+"\n", buf.String())
}

func TestQuiz_Populated(t *testing.T) {
	var buf bytes.Buffer
	res := normalize.Result{
		Status: normalize.StatusPopulated,
		Quiz: domain.CanonicalQuiz{
			Title:       "Turing",
			Description: strPtr("About Alan Turing"),
			Questions: []domain.CanonicalQuestion{
				{Text: "Born?", Difficulty: "easy", Options: []string{"1912", "1913"}, Answer: "1912", Explanation: strPtr("June 1912")},
				{Text: "Untitled Question", Difficulty: "unknown", Options: []string{"Option A"}, Answer: "No answer provided"},
			},
		},
	}

	require.NoError(t, NewRenderer(&buf).Quiz(res))

	want := "Turing\n" +
		"======\n" +
		"About Alan Turing\n" +
		"\n" +
		"1. Born? (easy)\n" +
		"   1) 1912\n" +
		"   2) 1913\n" +
		"   Answer: 1912\n" +
		"   Explanation: June 1912\n" +
		"\n" +
		"2. Untitled Question (unknown)\n" +
		"   1) Option A\n" +
		"   Answer: No answer provided\n"
	assert.Equal(t, want, buf.String())
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	date := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{ID: "1", URL: "https://en.wikipedia.org/wiki/A", Title: strPtr("A"), DateGenerated: &date},
		{ID: "22", URL: "https://en.wikipedia.org/wiki/B"},
	}

	require.NoError(t, NewRenderer(&buf).History(entries, func(id string) bool { return id == "22" }))

	want := "ID  URL                              TITLE     DATE\n" +
		"1   https://en.wikipedia.org/wiki/A  A         05-03-2024  Details\n" +
		"22  https://en.wikipedia.org/wiki/B  Untitled  N/A         Loading...\n"
	assert.Equal(t, want, buf.String())
}

func TestHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).History(nil, nil))
	assert.Equal(t, MsgNoHistory+"\n", buf.String())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31-12-1999", FormatDate(&d))
	assert.Equal(t, "N/A", FormatDate(nil))
	assert.Equal(t, "N/A", FormatDate(&time.Time{}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestQuiz_PropagatesWriteError(t *testing.T) {
	err := NewRenderer(failingWriter{}).Quiz(normalize.Result{Status: normalize.StatusEmpty})
	assert.EqualError(t, err, "closed")
}
