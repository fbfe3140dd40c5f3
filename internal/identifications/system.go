package identifications

import (
	"context"

	"github.com/JaimeStill/mariner/pkg/pagination"
)

// System defines the public contract for identification operations.
type System interface {
	Handler(limits UploadLimits) *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Identification, error)
	Count(ctx context.Context, page pagination.PageRequest, filters Filters) (int, error)
	Find(ctx context.Context, id int64) (*Identification, error)
	Create(ctx context.Context, cmd CreateCommand) (*Identification, error)
	Delete(ctx context.Context, id int64) error
	Identify(ctx context.Context, cmd IdentifyCommand) (*IdentifyResult, error)
}
