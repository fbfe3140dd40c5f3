package feedback

import "context"

// System defines the public contract for feedback operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Feedback, error)
	Stats(ctx context.Context) (*Stats, error)
}
