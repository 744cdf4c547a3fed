// Package render writes normalized quizzes and history lists as plain text.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/normalize"

	"github.com/mattn/go-runewidth"
)

const (
	MsgInvalidQuiz = "Error: Invalid quiz data received."
	MsgNoQuestions = "No questions available for this quiz."
	MsgNoHistory   = "No history available"

	untitledEntry = "Untitled"
	noDate        = "N/A"
	dateLayout    = "02-01-2006"

	markerLoading = "Loading..."
	markerIdle    = "Details"

	urlWidth   = 48
	titleWidth = 40
)

type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Quiz writes one of the three render states.
func (r *Renderer) Quiz(res normalize.Result) error {
	ew := &errWriter{w: r.w}

	switch res.Status {
	case normalize.StatusInvalid:
		ew.println(MsgInvalidQuiz)
		return ew.err
	case normalize.StatusEmpty:
		ew.println(MsgNoQuestions)
		return ew.err
	}

	quiz := res.Quiz
	ew.println(quiz.Title)
	ew.println(strings.Repeat("=", runewidth.StringWidth(quiz.Title)))
	if quiz.Description != nil {
		ew.println(*quiz.Description)
	}

	for i, q := range quiz.Questions {
		ew.println("")
		ew.printf("%d. %s (%s)\n", i+1, q.Text, q.Difficulty)
		for j, opt := range q.Options {
			ew.printf("   %d) %s\n", j+1, opt)
		}
		ew.printf("   Answer: %s\n", q.Answer)
		if q.Explanation != nil {
			ew.printf("   Explanation: %s\n", *q.Explanation)
		}
	}
	return ew.err
}

// History writes the history table. loading reports which ids have a detail
// fetch in flight; it may be nil.
func (r *Renderer) History(entries []domain.HistoryEntry, loading func(id string) bool) error {
	ew := &errWriter{w: r.w}
	if len(entries) == 0 {
		ew.println(MsgNoHistory)
		return ew.err
	}

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{"ID", "URL", "TITLE", "DATE", ""})
	for _, e := range entries {
		marker := markerIdle
		if loading != nil && loading(e.ID) {
			marker = markerLoading
		}
		rows = append(rows, []string{
			e.ID,
			runewidth.Truncate(e.URL, urlWidth, "…"),
			runewidth.Truncate(EntryTitle(e), titleWidth, "…"),
			FormatDate(e.DateGenerated),
			marker,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		ew.println(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return ew.err
}

// Failure writes a recovered error message.
func (r *Renderer) Failure(msg string) error {
	_, err := fmt.Fprintf(r.w, "Error: %s\n", msg)
	return err
}

// EntryTitle returns the entry title or "Untitled".
func EntryTitle(e domain.HistoryEntry) string {
	if e.Title == nil || *e.Title == "" {
		return untitledEntry
	}
	return *e.Title
}

// FormatDate renders t as DD-MM-YYYY, or "N/A" when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return noDate
	}
	return t.Format(dateLayout)
}

// errWriter keeps the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	ew.printf("%s\n", s)
}
