package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
	"github.com/JaimeStill/mariner/internal/workflow"
)

type stubClassifier struct {
	result *vision.Classification
	calls  int
}

func (s *stubClassifier) Classify(ctx context.Context, key string) *vision.Classification {
	s.calls++
	return s.result
}

type stubDirectory struct {
	vessel *vessels.Vessel
	hints  []vessels.Hints
}

func (s *stubDirectory) Lookup(ctx context.Context, hints vessels.Hints) *vessels.Vessel {
	s.hints = append(s.hints, hints)
	return s.vessel
}

func newRuntime(c *stubClassifier, d *stubDirectory) *workflow.Runtime {
	return &workflow.Runtime{
		Classifier: c,
		Directory:  d,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestExecute_PassesExactHints(t *testing.T) {
	brand := "Sunseeker"
	classification := &vision.Classification{
		BoatType:   "Yacht",
		Brand:      &brand,
		Confidence: 0.9,
		Labels:     []vision.Label{{Name: "Yacht", Confidence: 0.95}, {Name: "Water", Confidence: 0.8}},
		Colors:     []vision.Color{{Value: "#ffffff", Score: 0.6}},
		Mode:       vision.ModeLive,
	}
	vessel := &vessels.Vessel{Name: "Sea Explorer", Source: vessels.SourceDemo}

	c := &stubClassifier{result: classification}
	d := &stubDirectory{vessel: vessel}

	result := workflow.Execute(context.Background(), newRuntime(c, d), "uploads/a.jpg")

	require.Len(t, d.hints, 1)
	assert.Equal(t, vessels.Hints{
		Type:   "Yacht",
		Labels: []string{"Yacht", "Water"},
		Colors: []string{"#ffffff"},
	}, d.hints[0])

	assert.Same(t, classification, result.Classification)
	assert.Same(t, vessel, result.Vessel)
	assert.False(t, result.CompletedAt.IsZero())
	assert.Equal(t, 1, c.calls)
}

func TestExecute_SkipsLookupForEmptyClassification(t *testing.T) {
	c := &stubClassifier{result: &vision.Classification{Mode: vision.ModeLive}}
	d := &stubDirectory{vessel: &vessels.Vessel{Name: "unused"}}

	result := workflow.Execute(context.Background(), newRuntime(c, d), "uploads/empty.jpg")

	assert.Empty(t, d.hints, "directory must not be called")
	assert.Nil(t, result.Vessel)
	assert.NotNil(t, result.Classification)
}

func TestExecute_LookupWhenOnlyOneSignalPresent(t *testing.T) {
	tests := []struct {
		name           string
		classification *vision.Classification
	}{
		{"type only", &vision.Classification{BoatType: "Unknown"}},
		{"labels only", &vision.Classification{Labels: []vision.Label{{Name: "Boat", Confidence: 0.7}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &stubDirectory{}
			result := workflow.Execute(context.Background(), newRuntime(&stubClassifier{result: tt.classification}, d), "k")

			assert.Len(t, d.hints, 1)
			assert.Nil(t, result.Vessel)
		})
	}
}

func TestExecute_FailedClassificationStillLooksUp(t *testing.T) {
	failed := vision.Failed(assert.AnError)
	d := &stubDirectory{vessel: &vessels.Vessel{Name: "Blue Horizon", Source: vessels.SourceDemo}}

	result := workflow.Execute(context.Background(), newRuntime(&stubClassifier{result: failed}, d), "k")

	require.Len(t, d.hints, 1)
	assert.Equal(t, vision.FailedType, d.hints[0].Type)
	assert.Equal(t, []string{"Watercraft"}, d.hints[0].Labels)
	assert.Equal(t, []string{}, d.hints[0].Colors)
	assert.Equal(t, "Blue Horizon", result.Vessel.Name)
}
