// Package identifications persists boat identifications and runs the
// identification pipeline for uploaded images.
package identifications

import (
	"time"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
)

// Identification is a persisted identification record. Records are never
// updated after creation.
type Identification struct {
	ID           int64     `json:"id"`
	ImagePath    string    `json:"image_path"`
	BoatType     string    `json:"boat_type"`
	BoatBrand    *string   `json:"boat_brand"`
	BoatModel    *string   `json:"boat_model"`
	Confidence   float64   `json:"confidence"`
	VesselName   *string   `json:"vessel_name"`
	MMSI         *string   `json:"mmsi"`
	Registration *string   `json:"registration"`
	Length       *string   `json:"length"`
	Tonnage      *string   `json:"tonnage"`
	Owner        *string   `json:"owner"`
	Location     *string   `json:"location"`
	IdentifiedAt time.Time `json:"identified_at"`
}

// CreateCommand contains the fields for inserting an identification.
// ID and IdentifiedAt are assigned by the store.
type CreateCommand struct {
	ImagePath    string
	BoatType     string
	BoatBrand    *string
	BoatModel    *string
	Confidence   float64
	VesselName   *string
	MMSI         *string
	Registration *string
	Length       *string
	Tonnage      *string
	Owner        *string
	Location     *string
}

// Filters narrows a history listing. Empty fields are ignored. BoatType and
// MMSI match exactly; Vessel matches a case-insensitive substring of the name.
type Filters struct {
	BoatType string
	MMSI     string
	Vessel   string
}

// IdentifyCommand is an uploaded image to identify. Filename supplies the
// stored key's extension.
type IdentifyCommand struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IdentifyResult is the outcome of the identification pipeline for one image.
type IdentifyResult struct {
	Identification *Identification
	ImageURL       string
	Classification *vision.Classification
	Vessel         *vessels.Vessel
}
