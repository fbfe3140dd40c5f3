package vision

import (
	"fmt"
	"math"
	"strings"

	api "google.golang.org/api/vision/v1"
)

// annotations gathers the four feature responses of one live classification.
type annotations struct {
	labels   []*api.EntityAnnotation
	objects  []*api.LocalizedObjectAnnotation
	colors   *api.ImageProperties
	entities *api.WebDetection
}

var typeTable = typeSynonyms()

// analyze ranks the annotations into a live Classification.
func analyze(a *annotations) *Classification {
	labels := toLabels(a.labels)

	boatType, typeScore := bestMatch(typeTable, labels)
	brand, brandScore := bestMatch(brandSynonyms, labels)

	top, ok := topRelevant(labels)
	if !ok {
		top = 0.5
	}

	c := &Classification{
		BoatType:        UnknownType,
		Confidence:      round(0.4*top + 0.4*typeScore + 0.2*brandScore),
		Labels:          capped(labels, maxLabels),
		Colors:          dominantColors(a.colors),
		Objects:         filterObjects(a.objects),
		SimilarEntities: filterEntities(a.entities),
		Mode:            ModeLive,
	}

	if boatType != "" {
		c.BoatType = boatType
	}
	if brand != "" {
		c.Brand = &brand
	}

	return c
}

// bestMatch returns the table entry whose keywords match the highest-scoring
// label. A label matches a keyword when its lowercase text contains it.
// Ties keep the earlier entry.
func bestMatch(table synonymTable, labels []Label) (string, float64) {
	var (
		best  string
		score float64
	)

	for _, entry := range table {
		s := entryScore(entry, labels)
		if s > score {
			best, score = entry.Name, s
		}
	}
	return best, score
}

func entryScore(entry synonym, labels []Label) float64 {
	var score float64
	for _, l := range labels {
		text := strings.ToLower(l.Name)
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) && l.Confidence > score {
				score = l.Confidence
			}
		}
	}
	return score
}

// topRelevant returns the highest confidence among boat-related labels.
func topRelevant(labels []Label) (float64, bool) {
	var (
		top   float64
		found bool
	)
	for _, l := range labels {
		if containsAny(l.Name, relevantTerms) && (!found || l.Confidence > top) {
			top, found = l.Confidence, true
		}
	}
	return top, found
}

func toLabels(annotations []*api.EntityAnnotation) []Label {
	labels := make([]Label, 0, len(annotations))
	for _, a := range annotations {
		if a == nil || a.Description == "" {
			continue
		}
		labels = append(labels, Label{Name: a.Description, Confidence: a.Score})
	}
	return labels
}

func filterObjects(objects []*api.LocalizedObjectAnnotation) []Label {
	out := []Label{}
	for _, o := range objects {
		if o == nil || !containsAny(o.Name, objectTerms) {
			continue
		}
		out = append(out, Label{Name: o.Name, Confidence: o.Score})
		if len(out) == maxObjects {
			break
		}
	}
	return out
}

func filterEntities(web *api.WebDetection) []Label {
	out := []Label{}
	if web == nil {
		return out
	}
	for _, e := range web.WebEntities {
		if e == nil || !containsAny(e.Description, entityTerms) {
			continue
		}
		out = append(out, Label{Name: e.Description, Confidence: e.Score})
		if len(out) == maxEntities {
			break
		}
	}
	return out
}

func dominantColors(props *api.ImageProperties) []Color {
	out := []Color{}
	if props == nil || props.DominantColors == nil {
		return out
	}
	for _, info := range props.DominantColors.Colors {
		if info == nil || info.Color == nil {
			continue
		}
		out = append(out, Color{Value: hex(info.Color), Score: info.Score})
		if len(out) == maxColors {
			break
		}
	}
	return out
}

func hex(c *api.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.Red), channel(c.Green), channel(c.Blue))
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 255)))
}

func containsAny(text string, terms []string) bool {
	text = strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func capped[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
