package vision

import "slices"

// boatType is one row of the boat-type table. Confidence is the synthetic
// confidence for the type.
type boatType struct {
	Name        string
	Confidence  float64
	Description string
	Keywords    []string
}

var boatTypes = []boatType{
	{"Yacht", 0.94, "Luxury motor yacht with sleek design",
		[]string{"yacht", "luxury yacht", "superyacht", "motor yacht"}},
	{"Sailboat", 0.91, "Classic sailing vessel with mainsail and jib",
		[]string{"sailboat", "sailing", "sloop", "schooner", "sailing ship"}},
	{"Speedboat", 0.88, "High-performance powerboat",
		[]string{"speedboat", "powerboat", "motorboat", "jet boat", "racing boat"}},
	{"Fishing Boat", 0.85, "Commercial fishing vessel",
		[]string{"fishing boat", "fishing vessel", "trawler", "fishing"}},
	{"Cruise Ship", 0.97, "Large passenger cruise liner",
		[]string{"cruise ship", "cruise", "ocean liner", "passenger ship"}},
	{"Cargo Ship", 0.93, "Container cargo vessel",
		[]string{"cargo ship", "container ship", "freighter", "bulk carrier", "tanker"}},
	{"Catamaran", 0.89, "Twin-hull sailing or power catamaran",
		[]string{"catamaran", "multihull", "trimaran"}},
	{"Tugboat", 0.86, "Powerful harbor tugboat",
		[]string{"tugboat", "tug", "towboat"}},
	{"Ferry", 0.90, "Passenger and vehicle ferry",
		[]string{"ferry", "ferryboat", "passenger ferry"}},
	{"Dinghy", 0.82, "Small recreational boat",
		[]string{"dinghy", "rowboat", "inflatable boat", "tender"}},
}

// BoatTypes returns the canonical boat type names in table order.
func BoatTypes() []string {
	names := make([]string, len(boatTypes))
	for i, t := range boatTypes {
		names[i] = t.Name
	}
	return names
}

// synonym is one canonical name with the keywords that select it.
type synonym struct {
	Name     string
	Keywords []string
}

// synonymTable is an ordered mapping from canonical name to keywords.
type synonymTable []synonym

// newSynonymTable builds a table from entries. A repeated name keeps its
// first position and takes the keywords of its last occurrence.
func newSynonymTable(entries ...synonym) synonymTable {
	table := make(synonymTable, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		if i, ok := index[e.Name]; ok {
			table[i].Keywords = e.Keywords
			continue
		}
		index[e.Name] = len(table)
		table = append(table, e)
	}
	return table
}

func typeSynonyms() synonymTable {
	entries := make([]synonym, len(boatTypes))
	for i, t := range boatTypes {
		entries[i] = synonym{Name: t.Name, Keywords: t.Keywords}
	}
	return newSynonymTable(entries...)
}

var brandSynonyms = newSynonymTable(
	synonym{"Sea Ray", []string{"sea ray", "searay"}},
	synonym{"Bayliner", []string{"bayliner"}},
	synonym{"Boston Whaler", []string{"boston whaler", "whaler"}},
	synonym{"Beneteau", []string{"beneteau", "bénéteau"}},
	synonym{"Jeanneau", []string{"jeanneau"}},
	synonym{"Sunseeker", []string{"sunseeker"}},
	synonym{"Azimut", []string{"azimut"}},
	synonym{"Ferretti", []string{"ferretti"}},
	synonym{"Princess", []string{"princess yachts", "princess"}},
	synonym{"Nautique", []string{"nautique", "correct craft"}},
	synonym{"Mastercraft", []string{"mastercraft"}},
	synonym{"Malibu", []string{"malibu boats", "malibu"}},
	synonym{"Sea Ray", []string{"sea ray", "searay", "sea ray boats", "sundancer"}},
)

// brands is the synthetic brand list, in table order.
var brands = func() []string {
	names := make([]string, len(brandSynonyms))
	for i, b := range brandSynonyms {
		names[i] = b.Name
	}
	return names
}()

var locations = []string{
	"Mediterranean Sea", "Caribbean", "Pacific Ocean", "Atlantic Ocean", "Gulf of Mexico",
	"Marina del Rey", "Miami Beach", "Monaco", "Sydney Harbour", "Cannes",
}

var (
	hullMaterials = []string{"Fiberglass", "Steel", "Aluminum", "Wood"}
	engineTypes   = []string{"Inboard", "Outboard", "Inboard/Outboard", "Jet"}
	seaNames      = []string{"Dream", "Breeze", "Wanderer", "Explorer", "Spirit"}
	myNames       = []string{"Love", "Way", "Destiny", "Escape", "Paradise"}
)

// relevantTerms mark a label or web entity as boat-related.
var relevantTerms = []string{"boat", "ship", "vessel", "yacht", "sail", "maritime", "nautical"}

// entityTerms mark a web entity as boat-related.
var entityTerms = append(slices.Clone(relevantTerms), "marine", "watercraft", "regatta")

// objectTerms is the allow-list for localized objects.
var objectTerms = []string{"boat", "ship", "watercraft", "vehicle", "sailboat", "yacht", "kayak", "canoe"}

const (
	maxLabels   = 10
	maxObjects  = 10
	maxEntities = 5
	maxColors   = 10
)
