package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// Column aliases are quoted so Oracle returns lower-case names to sqlx.
const (
	quizColumns = `id "id", url "url", title "title", date_generated "date_generated", scraped_content "scraped_content", full_quiz_data "full_quiz_data"`

	selectQuizByURL = `SELECT ` + quizColumns + ` FROM quizzes WHERE url = ?`
	selectQuizByID  = `SELECT ` + quizColumns + ` FROM quizzes WHERE id = ?`
	selectHistory   = `SELECT id "id", url "url", title "title", date_generated "date_generated" FROM quizzes ORDER BY date_generated ASC, id ASC`

	insertQuiz = `INSERT INTO quizzes (id, url, title, date_generated, scraped_content, full_quiz_data) VALUES (?, ?, ?, ?, ?, ?)`
	updateQuiz = `UPDATE quizzes SET title = ?, scraped_content = ?, full_quiz_data = ? WHERE id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
	tx domain.TransactionManager
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db, tx: NewTransactionManagerAdapter(db)}
}

// SaveByURL implements domain.QuizRepository. A URL that was generated
// before keeps its id and date; title, content, and quiz data are replaced.
func (a *QuizDatabaseAdapter) SaveByURL(ctx context.Context, quiz *domain.StoredQuiz) (*domain.StoredQuiz, error) {
	if quiz == nil {
		return nil, fmt.Errorf("cannot save nil quiz")
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.StoredQuiz
	err := a.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, a.db)

		var existing models.Quiz
		err := exec.GetContext(ctx, &existing, exec.Rebind(selectQuizByURL), quiz.URL)
		switch {
		case err == nil:
			if _, err := exec.ExecContext(ctx, exec.Rebind(updateQuiz),
				util.StringToNullString(quiz.Title),
				util.StringToNullString(quiz.ScrapedContent),
				string(quiz.QuizData),
				existing.ID,
			); err != nil {
				return domain.NewPersistenceError("Database update failed", err)
			}
			saved = &domain.StoredQuiz{
				ID:             existing.ID,
				URL:            quiz.URL,
				Title:          quiz.Title,
				DateGenerated:  existing.DateGenerated.UTC(),
				ScrapedContent: quiz.ScrapedContent,
				QuizData:       quiz.QuizData,
			}
			return nil

		case errors.Is(err, sql.ErrNoRows):
			row := *quiz
			row.ID = util.NewULID()
			if row.DateGenerated.IsZero() {
				row.DateGenerated = time.Now().UTC()
			}
			if _, err := exec.ExecContext(ctx, exec.Rebind(insertQuiz),
				row.ID,
				row.URL,
				util.StringToNullString(row.Title),
				row.DateGenerated,
				util.StringToNullString(row.ScrapedContent),
				string(row.QuizData),
			); err != nil {
				return domain.NewPersistenceError("Database insert failed", err)
			}
			saved = &row
			return nil

		default:
			return fmt.Errorf("failed to look up quiz by url: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// ListHistory implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var rows []models.HistoryRow
	if err := a.db.SelectContext(ctx, &rows, selectHistory); err != nil {
		return nil, fmt.Errorf("failed to list quiz history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entry := domain.HistoryEntry{ID: r.ID, URL: r.URL}
		if r.Title.Valid {
			title := r.Title.String
			entry.Title = &title
		}
		if r.DateGenerated.Valid {
			date := util.NullTimeToTime(r.DateGenerated)
			entry.DateGenerated = &date
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	var row models.Quiz
	if err := a.db.GetContext(ctx, &row, a.db.Rebind(selectQuizByID), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

func toDomainQuiz(row *models.Quiz) *domain.StoredQuiz {
	return &domain.StoredQuiz{
		ID:             row.ID,
		URL:            row.URL,
		Title:          util.NullStringToString(row.Title),
		DateGenerated:  row.DateGenerated.UTC(),
		ScrapedContent: util.NullStringToString(row.ScrapedContent),
		QuizData:       []byte(row.FullQuizData),
	}
}
