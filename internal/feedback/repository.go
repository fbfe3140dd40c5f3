package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/mariner/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a feedback repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "feedback"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Feedback, error) {
	if cmd.IdentificationID == 0 {
		return nil, ErrMissingIdentification
	}

	q := `
		INSERT INTO feedback(identification_id, is_correct, feedback_text, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	now := time.Now().UTC()
	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, q, cmd.IdentificationID, cmd.IsCorrect, cmd.FeedbackText, now).Scan(&id)
		return id, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"feedback recorded",
		"id", id,
		"identification_id", cmd.IdentificationID,
		"is_correct", cmd.IsCorrect,
	)

	return &Feedback{
		ID:               id,
		IdentificationID: cmd.IdentificationID,
		IsCorrect:        cmd.IsCorrect,
		FeedbackText:     cmd.FeedbackText,
		SubmittedAt:      now,
	}, nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	q := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_correct THEN 0 ELSE 1 END), 0)
		FROM feedback`

	var s Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.CorrectCount, &s.IncorrectCount); err != nil {
		return nil, fmt.Errorf("query feedback stats: %w", err)
	}
	return &s, nil
}
