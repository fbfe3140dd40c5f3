// Package feedback records user confirmations and corrections of
// identifications and reports aggregate accuracy.
package feedback

import "time"

// Feedback is a stored feedback record. IdentificationID is not checked
// against existing identifications.
type Feedback struct {
	ID               int64     `json:"id"`
	IdentificationID int64     `json:"identification_id"`
	IsCorrect        bool      `json:"is_correct"`
	FeedbackText     *string   `json:"feedback_text"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// CreateCommand contains the fields for submitting feedback.
type CreateCommand struct {
	IdentificationID int64
	IsCorrect        bool
	FeedbackText     *string
}

// Stats aggregates all feedback records.
type Stats struct {
	Total          int64 `json:"total"`
	CorrectCount   int64 `json:"correct_count"`
	IncorrectCount int64 `json:"incorrect_count"`
}
