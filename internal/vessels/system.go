package vessels

import "context"

// System defines the public contract for vessel lookups. None of the lookups
// fail outward: registry errors are logged and replaced by fallbacks.
type System interface {
	Handler() *Handler

	Lookup(ctx context.Context, hints Hints) *Vessel
	LookupMMSI(ctx context.Context, mmsi string) *Vessel
	LookupIMO(ctx context.Context, imo string) *Vessel
	Search(ctx context.Context, hints Hints) []Vessel
}
