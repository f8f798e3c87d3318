package polls

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pollhub/backend/internal/models"
)

// Repository is the PostgreSQL-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a poll repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListRecent returns up to limit questions ordered by publish time
// descending, ties by id (insertion order).
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Question, error) {
	const q = `SELECT id, text, published_at FROM questions
		ORDER BY published_at DESC, id LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(&question.ID, &question.Text, &question.PublishedAt); err != nil {
			return nil, err
		}
		list = append(list, question)
	}
	return list, rows.Err()
}

// GetQuestion returns a question with its choices ordered by id.
func (r *Repository) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	const q = `SELECT id, text, published_at FROM questions WHERE id = $1`
	var question models.Question
	err := r.pool.QueryRow(ctx, q, id).Scan(&question.ID, &question.Text, &question.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	const cq = `SELECT id, question_id, text, votes FROM choices
		WHERE question_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, cq, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, err
		}
		question.Choices = append(question.Choices, c)
	}
	return &question, rows.Err()
}

// GetChoice returns a choice only if it belongs to the given question.
func (r *Repository) GetChoice(ctx context.Context, questionID, choiceID int64) (*models.Choice, error) {
	const q = `SELECT id, question_id, text, votes FROM choices
		WHERE id = $1 AND question_id = $2`
	var c models.Choice
	err := r.pool.QueryRow(ctx, q, choiceID, questionID).
		Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RecordVote adds one vote to the choice. The increment happens in a single
// UPDATE so concurrent votes never lose updates.
func (r *Repository) RecordVote(ctx context.Context, questionID, choiceID int64) (*models.Choice, error) {
	const q = `UPDATE choices SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
		RETURNING id, question_id, text, votes`
	var c models.Choice
	err := r.pool.QueryRow(ctx, q, choiceID, questionID).
		Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateQuestion inserts a question with its choices. Not part of Store:
// questions are created out of band (seed tool, operators), never by a
// request handler.
func (r *Repository) CreateQuestion(ctx context.Context, text string, publishedAt time.Time, choices []string) (*models.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO questions (text, published_at) VALUES ($1, $2)
		RETURNING id, text, published_at`
	var question models.Question
	if err := tx.QueryRow(ctx, q, text, publishedAt).
		Scan(&question.ID, &question.Text, &question.PublishedAt); err != nil {
		return nil, err
	}

	const cq = `INSERT INTO choices (question_id, text) VALUES ($1, $2)
		RETURNING id, question_id, text, votes`
	for _, choiceText := range choices {
		var c models.Choice
		if err := tx.QueryRow(ctx, cq, question.ID, choiceText).
			Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, err
		}
		question.Choices = append(question.Choices, c)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &question, nil
}

// CountQuestions returns the number of questions, used by the seed tool to
// avoid double-seeding.
func (r *Repository) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}
