package refdata

// FMR holds HUD Fair Market Rent benchmarks (40th percentile) by unit size,
// in dollars per month.
type FMR struct {
	Studio int `json:"studio"`
	OneBr  int `json:"oneBr"`
	TwoBr  int `json:"twoBr"`
	ThreeBr int `json:"threeBr"`
	FourBr int `json:"fourBr"`
}

// MetroFMR2025 is the FY2025 NYC metro-area average, used when no ZIP-level
// benchmark exists.
var MetroFMR2025 = FMR{Studio: 2096, OneBr: 2157, TwoBr: 2580, ThreeBr: 3227, FourBr: 3524}

// DefaultFMR is the fallback for ZIPs missing from both tables.
var DefaultFMR = FMR{Studio: 1700, OneBr: 2000, TwoBr: 2400, ThreeBr: 3000, FourBr: 3400}

// ZipFMR2025 holds HUD Small Area Fair Market Rents for FY2025 by ZIP.
var ZipFMR2025 = map[string]FMR{
	// Manhattan
	"10001": {2150, 2450, 2950, 3750, 4200},
	"10002": {1950, 2250, 2750, 3450, 3900},
	"10003": {2250, 2550, 3050, 3850, 4300},
	"10004": {2450, 2750, 3350, 4150, 4650},
	"10005": {2450, 2750, 3350, 4150, 4650},
	"10006": {2450, 2750, 3350, 4150, 4650},
	"10007": {2350, 2650, 3250, 4050, 4550},
	"10009": {2050, 2350, 2850, 3550, 4000},
	"10010": {2200, 2500, 3000, 3800, 4250},
	"10011": {2300, 2600, 3150, 3950, 4400},
	"10012": {2400, 2700, 3300, 4100, 4600},
	"10013": {2400, 2700, 3300, 4100, 4600},
	"10014": {2350, 2650, 3200, 4000, 4500},
	"10016": {2150, 2450, 2950, 3700, 4150},
	"10017": {2200, 2500, 3050, 3800, 4250},
	"10018": {2100, 2400, 2900, 3650, 4100},
	"10019": {2050, 2350, 2850, 3550, 4000},
	"10020": {2200, 2500, 3050, 3800, 4250},
	"10021": {2300, 2600, 3150, 3950, 4400},
	"10022": {2250, 2550, 3100, 3900, 4350},
	"10023": {2200, 2500, 3000, 3800, 4250},
	"10024": {2250, 2550, 3050, 3850, 4300},
	"10025": {2100, 2400, 2900, 3650, 4100},
	"10026": {1850, 2150, 2600, 3250, 3650},
	"10027": {1800, 2100, 2550, 3200, 3600},
	"10028": {2250, 2550, 3100, 3900, 4350},
	"10029": {1750, 2050, 2500, 3100, 3500},
	"10030": {1750, 2050, 2500, 3100, 3500},
	"10031": {1700, 2000, 2400, 3000, 3400},
	"10032": {1650, 1950, 2350, 2950, 3300},
	"10033": {1600, 1900, 2300, 2850, 3200},
	"10034": {1550, 1850, 2250, 2800, 3150},
	"10035": {1700, 2000, 2400, 3000, 3400},
	"10036": {2100, 2400, 2900, 3650, 4100},
	"10037": {1700, 2000, 2400, 3000, 3400},
	"10038": {2350, 2650, 3200, 4000, 4500},
	"10039": {1700, 2000, 2400, 3000, 3400},
	"10040": {1550, 1850, 2250, 2800, 3150},
	"10044": {2000, 2300, 2800, 3500, 3950},
	"10065": {2350, 2650, 3200, 4000, 4500},
	"10069": {2200, 2500, 3000, 3800, 4250},
	"10075": {2350, 2650, 3200, 4000, 4500},
	"10128": {2200, 2500, 3000, 3800, 4250},
	"10280": {2500, 2800, 3400, 4250, 4750},
	"10282": {2500, 2800, 3400, 4250, 4750},
	// Brooklyn
	"11201": {2200, 2500, 3000, 3800, 4250},
	"11203": {1500, 1750, 2100, 2650, 3000},
	"11204": {1450, 1700, 2050, 2550, 2900},
	"11205": {2000, 2300, 2750, 3450, 3900},
	"11206": {1850, 2150, 2600, 3250, 3650},
	"11207": {1400, 1650, 2000, 2500, 2800},
	"11208": {1400, 1650, 2000, 2500, 2800},
	"11209": {1550, 1800, 2200, 2750, 3100},
	"11210": {1500, 1750, 2100, 2650, 3000},
	"11211": {2100, 2400, 2900, 3650, 4100},
	"11212": {1400, 1650, 2000, 2500, 2800},
	"11213": {1650, 1950, 2350, 2950, 3300},
	"11214": {1450, 1700, 2050, 2550, 2900},
	"11215": {2150, 2450, 2950, 3700, 4150},
	"11216": {1750, 2050, 2500, 3100, 3500},
	"11217": {2100, 2400, 2900, 3600, 4050},
	"11218": {1600, 1900, 2300, 2850, 3200},
	"11219": {1500, 1750, 2100, 2650, 3000},
	"11220": {1500, 1750, 2100, 2650, 3000},
	"11221": {1700, 2000, 2400, 3000, 3400},
	"11222": {2050, 2350, 2850, 3550, 4000},
	"11223": {1450, 1700, 2050, 2550, 2900},
	"11224": {1450, 1700, 2050, 2550, 2900},
	"11225": {1700, 2000, 2400, 3000, 3400},
	"11226": {1600, 1900, 2300, 2850, 3200},
	"11228": {1500, 1750, 2100, 2650, 3000},
	"11229": {1500, 1750, 2100, 2650, 3000},
	"11230": {1550, 1800, 2200, 2750, 3100},
	"11231": {2100, 2400, 2900, 3600, 4050},
	"11232": {1550, 1800, 2200, 2750, 3100},
	"11233": {1600, 1900, 2300, 2850, 3200},
	"11234": {1500, 1750, 2100, 2650, 3000},
	"11235": {1500, 1750, 2100, 2650, 3000},
	"11236": {1450, 1700, 2050, 2550, 2900},
	"11237": {1750, 2050, 2500, 3100, 3500},
	"11238": {2050, 2350, 2850, 3550, 4000},
	"11239": {1400, 1650, 2000, 2500, 2800},
	"11249": {2100, 2400, 2900, 3650, 4100},
	// Bronx
	"10451": {1350, 1600, 1950, 2400, 2700},
	"10452": {1350, 1600, 1950, 2400, 2700},
	"10453": {1350, 1600, 1950, 2400, 2700},
	"10454": {1350, 1600, 1950, 2400, 2700},
	"10455": {1350, 1600, 1950, 2400, 2700},
	"10456": {1350, 1600, 1950, 2400, 2700},
	"10457": {1350, 1600, 1950, 2400, 2700},
	"10458": {1400, 1650, 2000, 2500, 2800},
	"10459": {1350, 1600, 1950, 2400, 2700},
	"10460": {1350, 1600, 1950, 2400, 2700},
	"10461": {1450, 1700, 2050, 2550, 2900},
	"10462": {1400, 1650, 2000, 2500, 2800},
	"10463": {1550, 1800, 2200, 2750, 3100},
	"10464": {1600, 1900, 2300, 2850, 3200},
	"10465": {1500, 1750, 2100, 2650, 3000},
	"10466": {1450, 1700, 2050, 2550, 2900},
	"10467": {1400, 1650, 2000, 2500, 2800},
	"10468": {1400, 1650, 2000, 2500, 2800},
	"10469": {1450, 1700, 2050, 2550, 2900},
	"10470": {1500, 1750, 2100, 2650, 3000},
	"10471": {1700, 2000, 2400, 3000, 3400},
	"10472": {1350, 1600, 1950, 2400, 2700},
	"10473": {1400, 1650, 2000, 2500, 2800},
	"10474": {1350, 1600, 1950, 2400, 2700},
	"10475": {1450, 1700, 2050, 2550, 2900},
	// Queens
	"11101": {2000, 2300, 2750, 3450, 3900},
	"11102": {1750, 2050, 2500, 3100, 3500},
	"11103": {1750, 2050, 2500, 3100, 3500},
	"11104": {1700, 2000, 2400, 3000, 3400},
	"11105": {1750, 2050, 2500, 3100, 3500},
	"11106": {1750, 2050, 2500, 3100, 3500},
	"11354": {1600, 1900, 2300, 2850, 3200},
	"11355": {1550, 1800, 2200, 2750, 3100},
	"11356": {1550, 1800, 2200, 2750, 3100},
	"11357": {1600, 1900, 2300, 2850, 3200},
	"11358": {1600, 1900, 2300, 2850, 3200},
	"11360": {1650, 1950, 2350, 2950, 3300},
	"11361": {1650, 1950, 2350, 2950, 3300},
	"11362": {1700, 2000, 2400, 3000, 3400},
	"11363": {1700, 2000, 2400, 3000, 3400},
	"11364": {1650, 1950, 2350, 2950, 3300},
	"11365": {1600, 1900, 2300, 2850, 3200},
	"11366": {1600, 1900, 2300, 2850, 3200},
	"11367": {1550, 1800, 2200, 2750, 3100},
	"11368": {1500, 1750, 2100, 2650, 3000},
	"11369": {1550, 1800, 2200, 2750, 3100},
	"11370": {1550, 1800, 2200, 2750, 3100},
	"11372": {1650, 1950, 2350, 2950, 3300},
	"11373": {1550, 1800, 2200, 2750, 3100},
	"11374": {1650, 1950, 2350, 2950, 3300},
	"11375": {1750, 2050, 2500, 3100, 3500},
	"11377": {1600, 1900, 2300, 2850, 3200},
	"11378": {1550, 1800, 2200, 2750, 3100},
	"11379": {1600, 1900, 2300, 2850, 3200},
	"11385": {1650, 1950, 2350, 2950, 3300},
	"11411": {1550, 1800, 2200, 2750, 3100},
	"11412": {1500, 1750, 2100, 2650, 3000},
	"11413": {1500, 1750, 2100, 2650, 3000},
	"11414": {1550, 1800, 2200, 2750, 3100},
	"11415": {1650, 1950, 2350, 2950, 3300},
	"11416": {1500, 1750, 2100, 2650, 3000},
	"11417": {1500, 1750, 2100, 2650, 3000},
	"11418": {1550, 1800, 2200, 2750, 3100},
	"11419": {1500, 1750, 2100, 2650, 3000},
	"11420": {1500, 1750, 2100, 2650, 3000},
	"11421": {1550, 1800, 2200, 2750, 3100},
	"11422": {1550, 1800, 2200, 2750, 3100},
	"11423": {1550, 1800, 2200, 2750, 3100},
	"11426": {1600, 1900, 2300, 2850, 3200},
	"11427": {1550, 1800, 2200, 2750, 3100},
	"11428": {1550, 1800, 2200, 2750, 3100},
	"11429": {1550, 1800, 2200, 2750, 3100},
	"11432": {1550, 1800, 2200, 2750, 3100},
	"11433": {1500, 1750, 2100, 2650, 3000},
	"11434": {1500, 1750, 2100, 2650, 3000},
	"11435": {1550, 1800, 2200, 2750, 3100},
	"11436": {1500, 1750, 2100, 2650, 3000},
	"11691": {1450, 1700, 2050, 2550, 2900},
	"11692": {1450, 1700, 2050, 2550, 2900},
	"11693": {1450, 1700, 2050, 2550, 2900},
	"11694": {1500, 1750, 2100, 2650, 3000},
	// Staten Island
	"10301": {1400, 1650, 2000, 2500, 2800},
	"10302": {1350, 1600, 1950, 2400, 2700},
	"10303": {1350, 1600, 1950, 2400, 2700},
	"10304": {1400, 1650, 2000, 2500, 2800},
	"10305": {1400, 1650, 2000, 2500, 2800},
	"10306": {1450, 1700, 2050, 2550, 2900},
	"10307": {1500, 1750, 2100, 2650, 3000},
	"10308": {1500, 1750, 2100, 2650, 3000},
	"10309": {1450, 1700, 2050, 2550, 2900},
	"10310": {1350, 1600, 1950, 2400, 2700},
	"10312": {1500, 1750, 2100, 2650, 3000},
	"10314": {1450, 1700, 2050, 2550, 2900},
}

// FMRForZip returns the ZIP-level FMR when one exists, otherwise the metro
// average, with a flag saying which was used.
func FMRForZip(zip string) (FMR, bool) {
	if f, ok := ZipFMR2025[zip]; ok {
		return f, true
	}
	return MetroFMR2025, false
}
