package polls

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pollhub/backend/internal/models"
)

// MemoryStore is an in-memory Store, used in tests and when running without
// PostgreSQL.
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[int64]*models.Question
	nextQID   int64
	nextCID   int64
}

// NewMemoryStore creates an empty in-memory poll store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{questions: make(map[int64]*models.Question)}
}

// AddQuestion inserts a question with choices and zero votes.
func (s *MemoryStore) AddQuestion(text string, publishedAt time.Time, choices ...string) *models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextQID++
	q := &models.Question{ID: s.nextQID, Text: text, PublishedAt: publishedAt}
	for _, choiceText := range choices {
		s.nextCID++
		q.Choices = append(q.Choices, models.Choice{
			ID:         s.nextCID,
			QuestionID: q.ID,
			Text:       choiceText,
		})
	}
	s.questions[q.ID] = q
	copied := copyQuestion(q)
	return &copied
}

// ListRecent returns up to limit questions, newest first, ties by id.
func (s *MemoryStore) ListRecent(ctx context.Context, limit int) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		list = append(list, models.Question{ID: q.ID, Text: q.Text, PublishedAt: q.PublishedAt})
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].PublishedAt.Equal(list[j].PublishedAt) {
			return list[i].PublishedAt.After(list[j].PublishedAt)
		}
		return list[i].ID < list[j].ID
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// GetQuestion returns a question with its choices.
func (s *MemoryStore) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := copyQuestion(q)
	return &copied, nil
}

// GetChoice returns a choice only if it belongs to the given question.
func (s *MemoryStore) GetChoice(ctx context.Context, questionID, choiceID int64) (*models.Choice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[questionID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, c := range q.Choices {
		if c.ID == choiceID {
			copied := c
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// RecordVote adds one vote to the choice under the store lock.
func (s *MemoryStore) RecordVote(ctx context.Context, questionID, choiceID int64) (*models.Choice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range q.Choices {
		if q.Choices[i].ID == choiceID {
			q.Choices[i].Votes++
			copied := q.Choices[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func copyQuestion(q *models.Question) models.Question {
	copied := *q
	copied.Choices = make([]models.Choice, len(q.Choices))
	copy(copied.Choices, q.Choices)
	return copied
}
