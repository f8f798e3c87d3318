package models

import "time"

// Question is a poll item with associated choices.
type Question struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
	Choices     []Choice  `json:"choices,omitempty"`
}

// Choice is one selectable option under a question, carrying a vote tally.
// Votes never decreases; the only writer is the vote-recording operation.
type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	Votes      int    `json:"votes"`
}
