package vessels

import "strings"

var demo = []Vessel{
	{
		Name:     "Sea Explorer",
		MMSI:     "123456789",
		IMO:      "8765432",
		Type:     "Yacht",
		Length:   "45m",
		Tonnage:  "500 GT",
		Owner:    "Ocean Adventures LLC",
		Location: "Marina del Rey, CA",
		Flag:     "USA",
	},
	{
		Name:     "Blue Horizon",
		MMSI:     "987654321",
		IMO:      "2345678",
		Type:     "Sailboat",
		Length:   "18m",
		Tonnage:  "45 GT",
		Owner:    "Private Owner",
		Location: "San Diego, CA",
		Flag:     "USA",
	},
	{
		Name:     "Pacific Dream",
		MMSI:     "456789123",
		IMO:      "3456789",
		Type:     "Motor Yacht",
		Length:   "32m",
		Tonnage:  "280 GT",
		Owner:    "Maritime Holdings Inc",
		Location: "Newport Beach, CA",
		Flag:     "Cayman Islands",
	},
}

// Demo returns a copy of the embedded demo directory.
func Demo() []Vessel {
	out := make([]Vessel, len(demo))
	copy(out, demo)
	return out
}

func demoByType(typ string) (Vessel, bool) {
	if typ == "" {
		return Vessel{}, false
	}
	needle := strings.ToLower(typ)
	for _, v := range demo {
		if strings.Contains(strings.ToLower(v.Type), needle) {
			return v, true
		}
	}
	return Vessel{}, false
}

func demoByMMSI(mmsi string) (Vessel, bool) {
	for _, v := range demo {
		if v.MMSI == mmsi {
			return v, true
		}
	}
	return Vessel{}, false
}

func demoByIMO(imo string) (Vessel, bool) {
	for _, v := range demo {
		if v.IMO == imo {
			return v, true
		}
	}
	return Vessel{}, false
}
