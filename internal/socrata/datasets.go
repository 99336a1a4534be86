package socrata

// NYC Open Data dataset identifiers queried by the aggregation fan-out.
const (
	// Core property data.
	DatasetPLUTO = "64uk-42ks" // master property database; primary record + centroid

	// HPD (Housing Preservation & Development).
	DatasetHPDViolations    = "wvxf-dwi5"
	DatasetHPDComplaints    = "uwyv-629c"
	DatasetHPDRegistrations = "tesw-yqqr"
	DatasetHPDContacts      = "feu5-w2e2"
	DatasetHPDLitigations   = "59kj-x8nc"
	DatasetHPDCharges       = "8wbx-tsch" // emergency repair charges
	DatasetHPDVacateOrders  = "tb8q-a3ar"
	DatasetHPDAEP           = "hgx9-fb9a" // Alternative Enforcement Program
	DatasetHPDCONH          = "bzxi-2tsj" // Certificate of No Harassment

	// DOB (Department of Buildings).
	DatasetDOBViolations = "3h2n-5cm9"
	DatasetDOBComplaints = "eabe-havv"
	DatasetDOBJobFilings = "ic3t-wcy2"
	DatasetDOBPermits    = "ipu4-2vj7"
	DatasetDOBSafety     = "855j-jady"
	DatasetECBViolations = "6bgk-3dad"
	DatasetDOBVacates    = "n5mv-nfpy"

	// Finance and sales.
	DatasetACRISLegals   = "8h5j-fqxa"
	DatasetRollingSales  = "usep-8jbt"
	DatasetTaxExemptions = "y7az-s7wc"
	DatasetTaxLienSales  = "9rz4-mjek"

	// Evictions and court.
	DatasetEvictions    = "6z8x-wfk4"
	DatasetHousingCourt = "sx8d-iq7x"

	// Health and pests.
	DatasetRodents = "p937-wjvj"
	DatasetBedbugs = "wz6d-d3jb"

	// Programs and lists.
	DatasetSpeculationWatch  = "adax-9mit"
	DatasetRentStabilized    = "35bc-yxqr"
	DatasetSubsidizedHousing = "hg8x-zxpr"
	DatasetNYCHA             = "evjd-dqpz"

	// 311 service requests.
	Dataset311 = "erm2-nwe9"

	// Crime and safety.
	DatasetNYPDComplaints = "5uac-w243"
	DatasetShootings      = "833y-fsy8"
	DatasetCrashes        = "h9gi-nx95"

	// Flood and environment.
	DatasetFloodZones     = "899q-kzik"
	DatasetHurricaneZones = "addd-ji6a"
	DatasetCoolingTowers  = "cnih-cqgr"

	// Restaurants.
	DatasetRestaurantInspections = "43nn-pn8j"

	// Transit.
	DatasetSubwayEntrances  = "drex-xx56"
	DatasetCitiBikeStations = "dzhx-5ksa"

	// Schools, parks, environment, amenities.
	DatasetSchoolLocations = "wg9x-4ke6"
	DatasetParks           = "enfh-gkve"
	DatasetStreetTrees     = "uvpi-gqnh"
	DatasetSidewalkCafes   = "qcdj-rwhu"
	DatasetWifiHotspots    = "yjub-udmw"
)
