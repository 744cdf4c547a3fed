package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID             string         `db:"id"`
	URL            string         `db:"url"`
	Title          sql.NullString `db:"title"`
	DateGenerated  time.Time      `db:"date_generated"`
	ScrapedContent sql.NullString `db:"scraped_content"`
	FullQuizData   string         `db:"full_quiz_data"`
}

// HistoryRow is the projection read by the history list.
type HistoryRow struct {
	ID            string         `db:"id"`
	URL           string         `db:"url"`
	Title         sql.NullString `db:"title"`
	DateGenerated sql.NullTime   `db:"date_generated"`
}
