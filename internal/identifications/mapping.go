package identifications

import (
	"time"

	"github.com/JaimeStill/mariner/internal/workflow"
	"github.com/JaimeStill/mariner/pkg/query"
	"github.com/JaimeStill/mariner/pkg/repository"
)

var projection = query.
	NewProjectionMap("", "identifications", "i").
	Project("id", "ID").
	Project("image_path", "ImagePath").
	Project("boat_type", "BoatType").
	Project("boat_brand", "BoatBrand").
	Project("boat_model", "BoatModel").
	Project("confidence", "Confidence").
	Project("vessel_name", "VesselName").
	Project("mmsi", "MMSI").
	Project("registration", "Registration").
	Project("length", "Length").
	Project("tonnage", "Tonnage").
	Project("owner", "Owner").
	Project("location", "Location").
	Project("identified_at", "IdentifiedAt")

var defaultSort = []query.SortField{
	{Field: "IdentifiedAt", Descending: true},
	{Field: "ID", Descending: true},
}

func scanIdentification(s repository.Scanner) (Identification, error) {
	var i Identification
	err := s.Scan(
		&i.ID,
		&i.ImagePath,
		&i.BoatType,
		&i.BoatBrand,
		&i.BoatModel,
		&i.Confidence,
		&i.VesselName,
		&i.MMSI,
		&i.Registration,
		&i.Length,
		&i.Tonnage,
		&i.Owner,
		&i.Location,
		&i.IdentifiedAt,
	)
	return i, err
}

// commandFromResult merges a workflow result into a CreateCommand. Vessel
// fields that are absent or empty are stored as NULL.
func commandFromResult(imagePath string, r *workflow.Result) CreateCommand {
	c := r.Classification
	cmd := CreateCommand{
		ImagePath:  imagePath,
		BoatType:   c.BoatType,
		BoatBrand:  c.Brand,
		BoatModel:  c.Model,
		Confidence: c.Confidence,
	}

	if v := r.Vessel; v != nil {
		cmd.VesselName = nullable(v.Name)
		cmd.MMSI = nullable(v.MMSI)
		cmd.Registration = nullable(v.IMO)
		cmd.Length = nullable(v.Length)
		cmd.Tonnage = nullable(v.Tonnage)
		cmd.Owner = nullable(v.Owner)
		cmd.Location = nullable(v.Location)
	}
	return cmd
}

func fromCommand(id int64, at time.Time, cmd CreateCommand) *Identification {
	return &Identification{
		ID:           id,
		ImagePath:    cmd.ImagePath,
		BoatType:     cmd.BoatType,
		BoatBrand:    cmd.BoatBrand,
		BoatModel:    cmd.BoatModel,
		Confidence:   cmd.Confidence,
		VesselName:   cmd.VesselName,
		MMSI:         cmd.MMSI,
		Registration: cmd.Registration,
		Length:       cmd.Length,
		Tonnage:      cmd.Tonnage,
		Owner:        cmd.Owner,
		Location:     cmd.Location,
		IdentifiedAt: at,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
