// Package refdata holds inert lookup tables used when shaping responses:
// borough code maps, ZIP-to-neighborhood names, building-class and job-type
// dictionaries, and HUD fair market rent benchmarks.
package refdata

// BoroughCodes maps the various borough spellings found across datasets to
// the display name.
var BoroughCodes = map[string]string{
	"1": "Manhattan", "2": "Bronx", "3": "Brooklyn", "4": "Queens", "5": "Staten Island",
	"MN": "Manhattan", "BX": "Bronx", "BK": "Brooklyn", "QN": "Queens", "SI": "Staten Island",
	"MANHATTAN": "Manhattan", "BRONX": "Bronx", "BROOKLYN": "Brooklyn", "QUEENS": "Queens", "STATEN ISLAND": "Staten Island",
}

// BoroughName resolves a raw borough field to a display name, passing the
// raw value through when unrecognized.
func BoroughName(raw string) string {
	if name, ok := BoroughCodes[raw]; ok {
		return name
	}
	return raw
}

// BoroughNumbers maps lowercase borough names and common aliases to the
// 1-digit BBL borough code, for parsing user-entered addresses.
var BoroughNumbers = map[string]string{
	"manhattan": "1", "mn": "1", "new york": "1", "ny": "1",
	"bronx": "2", "bx": "2", "the bronx": "2",
	"brooklyn": "3", "bk": "3", "kings": "3",
	"queens": "4", "qn": "4",
	"staten island": "5", "si": "5", "richmond": "5",
}

// BuildingClasses maps DOF building class codes to short descriptions.
var BuildingClasses = map[string]string{
	"A0": "Cape Cod", "A1": "Two Stories Detached", "A2": "One Story Attached", "A3": "Large Residence",
	"A4": "City Residence", "A5": "Converted Residence", "A6": "Summer Cottage", "A7": "Mansion",
	"A9": "Misc One Family", "B1": "Two Family Brick", "B2": "Two Family Frame", "B3": "Two Family Converted",
	"B9": "Misc Two Family", "C0": "Walk-up 3+ Family", "C1": "Walk-up Over 6 w/Stores",
	"C2": "Walk-up 3-6 Family", "C3": "Walk-up 7+ Family", "C4": "Old Law Tenement",
	"C5": "Converted Dwelling", "C6": "Walk-up Cooperative", "C7": "Walk-up over Retail",
	"C8": "Walk-up Condo", "C9": "Garden Apartments", "D0": "Elevator Co-op/Condo",
	"D1": "Elevator Semi-Fireproof", "D2": "Elevator Fireproof", "D3": "Elevator Fireproof",
	"D4": "Elevator Luxury", "D5": "Elevator Conversion", "D6": "Elevator Co-op",
	"D7": "Elevator Condo", "D8": "Elevator Loft", "D9": "Elevator Misc",
	"R0": "Condo Residential", "R1": "Condo Residential", "R2": "Condo Residential",
	"R3": "Condo Residential", "R4": "Condo Residential", "R5": "Condo Misc",
	"R6": "Condo Rentals", "R7": "Condo Homeowner", "R8": "Condo Converted", "R9": "Condo Co-op",
	"S0": "Residential on Commercial", "S1": "Residential over Store", "S2": "Residential over Store",
	"S3": "Residential over Office", "S4": "Residential over Medical", "S5": "Residential over Attached",
	"S9": "Single Family Attached",
}

// JobTypes maps DOB job type codes to descriptions.
var JobTypes = map[string]string{
	"A1": "Major Alteration", "A2": "Minor Alteration", "A3": "Minor Alteration",
	"DM": "Demolition", "NB": "New Building", "SG": "Sign",
	"PL": "Plumbing", "AL": "Alteration", "FO": "Foundation Only",
}
