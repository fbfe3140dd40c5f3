// Package vessels resolves vessel registry records from classification hints
// or maritime identifiers. Live registries are queried in priority order and
// an embedded demo directory stands in when none of them answer.
package vessels

// Source identifies where a Vessel record came from.
type Source string

const (
	SourceLive Source = "live_registry"
	SourceDemo Source = "demo_database"
)

// DemoNote is attached to demo records returned by hint-based lookups.
const DemoNote = "Using demo data. Add API keys for real vessel lookup."

// Vessel is a registry record. A non-nil Vessel always carries a Source.
type Vessel struct {
	Name     string  `json:"name"`
	MMSI     string  `json:"mmsi"`
	IMO      string  `json:"imo"`
	Type     string  `json:"type"`
	Length   string  `json:"length"`
	Tonnage  string  `json:"tonnage"`
	Owner    string  `json:"owner"`
	Location string  `json:"location"`
	Flag     string  `json:"flag"`
	Source   Source  `json:"source"`
	Note     *string `json:"note,omitempty"`
}

// Hints carries what is known about the vessel being looked up. MMSI or IMO
// select an identifier lookup; the rest drive registry search.
type Hints struct {
	Type   string
	Labels []string
	Colors []string
	Query  string
	MMSI   string
	IMO    string
}
