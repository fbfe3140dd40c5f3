// Package vision classifies boat photos. A live path fans four feature
// queries out to Google Cloud Vision and ranks the labels against synonym
// tables. Without credentials, or when the service is unreachable, a
// deterministic synthetic result is derived from the image's size and
// modification time.
package vision

// Mode records which path produced a Classification.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSynthetic Mode = "synthetic"
	ModeFailed    Mode = "failed"
)

// UnknownType is reported when no label matches the boat-type table.
const UnknownType = "Unknown"

// FailedType is reported when the live service returned an error.
const FailedType = "Boat (Analysis Failed)"

// Label is a named detection with a 0.0-1.0 confidence.
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Color is a dominant color, as #rrggbb for live results or a color name for
// synthetic ones.
type Color struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// Details carries the cosmetic attributes of a synthetic result.
type Details struct {
	Description     string   `json:"description"`
	PossibleNames   []string `json:"possibleNames"`
	EstimatedLength string   `json:"estimatedLength"`
	EstimatedValue  string   `json:"estimatedValue"`
	Location        string   `json:"location"`
	MMSI            string   `json:"mmsi"`
	YearBuilt       int      `json:"yearBuilt"`
	HullMaterial    string   `json:"hullMaterial"`
	EngineType      string   `json:"engineType"`
}

// Classification is the outcome of classifying one image. It is always
// produced; failures degrade its fields.
type Classification struct {
	BoatType        string   `json:"boatType"`
	Brand           *string  `json:"brand"`
	Model           *string  `json:"model"`
	Confidence      float64  `json:"confidence"`
	Labels          []Label  `json:"labels"`
	Colors          []Color  `json:"colors"`
	Objects         []Label  `json:"objects"`
	SimilarEntities []Label  `json:"similarEntities"`
	Details         *Details `json:"details,omitempty"`
	Mode            Mode     `json:"mode"`
	RawError        *string  `json:"rawError,omitempty"`
}

// LabelNames returns the label names in order.
func (c *Classification) LabelNames() []string {
	names := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		names[i] = l.Name
	}
	return names
}

// ColorValues returns the color values in order.
func (c *Classification) ColorValues() []string {
	values := make([]string, len(c.Colors))
	for i, col := range c.Colors {
		values[i] = col.Value
	}
	return values
}

// Failed builds the minimal result returned when analysis reports an error.
func Failed(err error) *Classification {
	msg := err.Error()
	return &Classification{
		BoatType:        FailedType,
		Confidence:      0.5,
		Labels:          []Label{{Name: "Watercraft", Confidence: 0.5}},
		Colors:          []Color{},
		Objects:         []Label{},
		SimilarEntities: []Label{},
		Mode:            ModeFailed,
		RawError:        &msg,
	}
}
