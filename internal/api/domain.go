package api

import (
	"github.com/JaimeStill/mariner/internal/feedback"
	"github.com/JaimeStill/mariner/internal/identifications"
	"github.com/JaimeStill/mariner/internal/vessels"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Identifications identifications.System
	Feedback        feedback.System
	Vessels         vessels.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	identificationsSystem := identifications.New(
		runtime.Database.Connection(),
		runtime.Workflow(),
		runtime.Storage,
		runtime.ImageBase,
		runtime.Logger,
		runtime.Pagination,
	)

	feedbackSystem := feedback.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	return &Domain{
		Identifications: identificationsSystem,
		Feedback:        feedbackSystem,
		Vessels:         runtime.Vessels,
	}
}
