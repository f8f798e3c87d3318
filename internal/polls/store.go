package polls

import (
	"context"
	"errors"

	"github.com/pollhub/backend/internal/models"
)

// ErrNotFound is returned when a question or choice does not exist, or when
// a choice does not belong to the given question.
var ErrNotFound = errors.New("poll not found")

// Store persists questions and their choices.
type Store interface {
	// ListRecent returns up to limit questions, most recently published
	// first; ties keep insertion order.
	ListRecent(ctx context.Context, limit int) ([]models.Question, error)
	// GetQuestion returns a question with its choices.
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	// GetChoice returns a choice only if it belongs to the given question.
	GetChoice(ctx context.Context, questionID, choiceID int64) (*models.Choice, error)
	// RecordVote atomically adds one vote to the choice and returns the
	// updated row. A missing choice, or one owned by another question,
	// returns ErrNotFound and mutates nothing.
	RecordVote(ctx context.Context, questionID, choiceID int64) (*models.Choice, error)
}
