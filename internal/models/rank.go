package models

// Rank is a military pay grade ("E-4", "O-3", ...).
type Rank string

// Ranks lists the recognized pay grades in order: enlisted, officer,
// warrant officer.
func Ranks() []Rank {
	return []Rank{
		"E-1", "E-2", "E-3", "E-4", "E-5", "E-6", "E-7", "E-8", "E-9",
		"O-1", "O-2", "O-3", "O-4", "O-5", "O-6", "O-7", "O-8", "O-9",
		"W-1", "W-2", "W-3", "W-4", "W-5",
	}
}

var rankDisplayNames = map[Rank]string{
	"E-1": "E-1 (Private)",
	"E-2": "E-2 (Private First Class)",
	"E-3": "E-3 (Lance Corporal)",
	"E-4": "E-4 (Corporal)",
	"E-5": "E-5 (Sergeant)",
	"E-6": "E-6 (Staff Sergeant)",
	"E-7": "E-7 (Sergeant First Class)",
	"E-8": "E-8 (Master Sergeant)",
	"E-9": "E-9 (Sergeant Major)",
	"O-1": "O-1 (Second Lieutenant)",
	"O-2": "O-2 (First Lieutenant)",
	"O-3": "O-3 (Captain)",
	"O-4": "O-4 (Major)",
	"O-5": "O-5 (Lieutenant Colonel)",
	"O-6": "O-6 (Colonel)",
	"O-7": "O-7 (Brigadier General)",
	"O-8": "O-8 (Major General)",
	"O-9": "O-9 (Lieutenant General)",
	"W-1": "W-1 (Warrant Officer 1)",
	"W-2": "W-2 (Chief Warrant Officer 2)",
	"W-3": "W-3 (Chief Warrant Officer 3)",
	"W-4": "W-4 (Chief Warrant Officer 4)",
	"W-5": "W-5 (Chief Warrant Officer 5)",
}

// DisplayName returns the human-readable form of the pay grade, or the raw
// value if the grade is not recognized.
func (r Rank) DisplayName() string {
	if name, ok := rankDisplayNames[r]; ok {
		return name
	}
	return string(r)
}
