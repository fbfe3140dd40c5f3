package vision

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Synthesize derives a classification from an image's size and modification
// time. Identical inputs always produce identical results.
func Synthesize(size int64, modTime time.Time) *Classification {
	seed := size + modTime.UnixMilli()
	if seed < 0 {
		seed = -seed
	}

	boat := boatTypes[(seed%1000)/100%int64(len(boatTypes))]
	brand := brands[(seed%100)/10%int64(len(brands))]
	location := locations[(seed%50)/5%int64(len(locations))]

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	mmsi := "3" + strconv.Itoa(rng.IntN(900_000_000)+100_000_000)
	modelNumber := rng.IntN(50) + 20
	length := rng.IntN(40) + 10
	value := rng.IntN(900) + 10
	year := rng.IntN(30) + 1990

	return &Classification{
		BoatType:   boat.Name,
		Brand:      &brand,
		Confidence: boat.Confidence,
		Labels: []Label{
			{Name: strings.ToLower(boat.Name), Confidence: boat.Confidence},
			{Name: "vessel", Confidence: boat.Confidence},
			{Name: "watercraft", Confidence: boat.Confidence},
			{Name: "marine", Confidence: boat.Confidence},
			{Name: strings.ToLower(brand), Confidence: 0.75},
		},
		Colors: []Color{
			{Value: "white", Score: 0.4},
			{Value: "blue", Score: 0.3},
			{Value: "navy", Score: 0.2},
			{Value: "cream", Score: 0.1},
		},
		Objects: []Label{
			{Name: "boat", Confidence: boat.Confidence},
			{Name: "water", Confidence: boat.Confidence},
			{Name: "sky", Confidence: boat.Confidence},
			{Name: "hull", Confidence: boat.Confidence},
			{Name: "deck", Confidence: boat.Confidence},
		},
		SimilarEntities: []Label{
			{Name: "Boat", Confidence: boat.Confidence},
			{Name: brand, Confidence: 0.75},
			{Name: "Yachting", Confidence: 0.68},
			{Name: "Maritime", Confidence: 0.65},
		},
		Details: &Details{
			Description: boat.Description,
			PossibleNames: []string{
				fmt.Sprintf("%s %d", brand, modelNumber),
				"Sea " + seaNames[seed%5],
				"My " + myNames[(seed/10)%5],
			},
			EstimatedLength: fmt.Sprintf("%d feet", length),
			EstimatedValue:  fmt.Sprintf("$%d,000", value),
			Location:        location,
			MMSI:            mmsi,
			YearBuilt:       year,
			HullMaterial:    hullMaterials[seed%4],
			EngineType:      engineTypes[(seed/100)%4],
		},
		Mode: ModeSynthetic,
	}
}
