// Package aggregate fans a single parcel out across NYC Open Data sources
// and assembles the building health report: profile, violations, complaints,
// enforcement, area safety, scores, red flags, and trend signals.
package aggregate

import (
	"time"

	"github.com/vimldn/vimnyc8/internal/scoring"
	"github.com/vimldn/vimnyc8/internal/signals"
)

// Report is the full single-parcel aggregation response.
type Report struct {
	Building *BuildingProfile       `json:"building"`
	Score    ScoreSummary           `json:"score"`
	Category []scoring.CategoryScore `json:"categoryScores"`

	Violations  ViolationsSection  `json:"violations"`
	Complaints  ComplaintsSection  `json:"complaints"`
	Litigations LitigationsSection `json:"litigations"`
	Charges     ChargesSection     `json:"charges"`
	Evictions   EvictionsSection   `json:"evictions"`
	Sales       SalesSection       `json:"sales"`
	Permits     PermitsSection     `json:"permits"`
	Rodents     RodentsSection     `json:"rodents"`
	Bedbugs     BedbugsSection     `json:"bedbugs"`
	Programs    Programs           `json:"programs"`
	Landlord    Landlord           `json:"landlord"`

	RiskAssessment []scoring.CategoryRisk `json:"riskAssessment"`
	RedFlags       []scoring.RedFlag      `json:"redFlags"`

	Timeline     []TimelineEvent     `json:"timeline"`
	MonthlyTrend []MonthlyTrendPoint `json:"monthlyTrend"`
	YearlyStats  []YearlyStat        `json:"yearlyStats"`
	Signals      SignalsSection      `json:"signals"`

	Crime         CrimeSection         `json:"crime"`
	Shootings     ShootingsSection     `json:"shootings"`
	TrafficSafety TrafficSection       `json:"trafficSafety"`
	CoolingTowers CoolingTowersSection `json:"coolingTowers"`
	TaxExemptions TaxExemptionsSection `json:"taxExemptions"`
	TaxLiens      TaxLiensSection      `json:"taxLiens"`
	Restaurants   RestaurantsSection   `json:"restaurants"`
	Noise         NoiseSection         `json:"noise"`
	RentFairness  RentFairnessSection  `json:"rentFairness"`
	Pests         PestsSection         `json:"pests"`
	Financial     FinancialSection     `json:"financialHealth"`

	Flood     FloodSection     `json:"flood"`
	Transit   TransitSection   `json:"transit"`
	Schools   SchoolsSection   `json:"schools"`
	Parks     ParksSection     `json:"parks"`
	Trees     TreesSection     `json:"trees"`
	Amenities AmenitiesSection `json:"amenities"`

	NeighborhoodScore int `json:"neighborhoodScore"`

	DegradedSources []DegradedSource `json:"degradedSources,omitempty"`
	DataSources     int              `json:"dataSourcesCounted"`
	LastUpdated     time.Time        `json:"lastUpdated"`
	Disclaimer      string           `json:"dataDisclaimer"`
}

// DegradedSource names a dataset that could not be queried for this report.
// Its counts read as zero, not as verified-clean.
type DegradedSource struct {
	Dataset string `json:"dataset"`
	Reason  string `json:"reason"`
}

// BuildingProfile is the PLUTO-derived identity of the parcel plus
// regulatory status (rent stabilization, subsidies, NYCHA).
type BuildingProfile struct {
	BBL          string `json:"bbl"`
	Address      string `json:"address"`
	Borough      string `json:"borough"`
	Neighborhood string `json:"neighborhood"`
	Zipcode      string `json:"zipcode"`

	YearBuilt  int `json:"yearBuilt,omitempty"`
	UnitsRes   int `json:"unitsRes"`
	UnitsTotal int `json:"unitsTotal"`
	Floors     int `json:"floors"`

	BuildingClass     string `json:"buildingClass"`
	BuildingClassDesc string `json:"buildingClassDesc"`
	OwnerName         string `json:"ownerName"`
	OwnerType         string `json:"ownerType"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	LotArea       *float64 `json:"lotArea"`
	BuildingArea  *float64 `json:"buildingArea"`
	ZoneDist1     string   `json:"zoneDist1"`
	AssessedValue *float64 `json:"assessedValue"`
	YearAltered1  int      `json:"yearAltered1,omitempty"`
	YearAltered2  int      `json:"yearAltered2,omitempty"`
	Landmark      string   `json:"landmark,omitempty"`
	HistDistrict  string   `json:"histDist,omitempty"`

	IsRentStabilized    bool     `json:"isRentStabilized"`
	RentStabilizedUnits *int     `json:"rentStabilizedUnits"`
	RSLostUnits         *int     `json:"rsLostUnits"`
	IsSubsidized        bool     `json:"isSubsidized"`
	SubsidyPrograms     []string `json:"subsidyPrograms"`
	IsNYCHA             bool     `json:"isNycha"`
	NYCHADevelopment    string   `json:"nychaDev,omitempty"`
}

// ScoreSummary is the composite score with its contributing counts.
type ScoreSummary struct {
	Overall   int            `json:"overall"`
	Grade     string         `json:"grade"`
	Label     string         `json:"label"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoreBreakdown lists the open counts that fed the composite score.
type ScoreBreakdown struct {
	HPDViolations int `json:"hpdViolations"`
	DOBViolations int `json:"dobViolations"`
	ECBViolations int `json:"ecbViolations"`
	Complaints    int `json:"complaints"`
	Litigations   int `json:"litigations"`
	Evictions     int `json:"evictions"`
	Pests         int `json:"pests"`
}

// YearBreakdown is a year's HPD violation total with its class split.
type YearBreakdown struct {
	Total  int `json:"total"`
	ClassA int `json:"a"`
	ClassB int `json:"b"`
	ClassC int `json:"c"`
}

// CategoryCount is a category with an occurrence count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryShare is a category count with its percentage of the total.
type CategoryShare struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Pct      int    `json:"pct"`
}

// TypeCount is a free-form type with an occurrence count.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ViolationsSection covers HPD, DOB, and ECB violations.
type ViolationsSection struct {
	HPD    HPDViolationStats `json:"hpd"`
	DOB    DOBViolationStats `json:"dob"`
	ECB    ECBViolationStats `json:"ecb"`
	Safety SafetyStats       `json:"safety"`
	Recent []ViolationItem   `json:"recent"`
}

type HPDViolationStats struct {
	Total      int                      `json:"total"`
	Open       int                      `json:"open"`
	ClassA     int                      `json:"classA"`
	ClassB     int                      `json:"classB"`
	ClassC     int                      `json:"classC"`
	ByYear     map[string]YearBreakdown `json:"byYear"`
	ByCategory []CategoryCount          `json:"byCategory"`
}

type DOBViolationStats struct {
	Total  int            `json:"total"`
	Open   int            `json:"open"`
	ByYear map[string]int `json:"byYear"`
}

type ECBViolationStats struct {
	Total         int     `json:"total"`
	Open          int     `json:"open"`
	PenaltiesOwed float64 `json:"penaltiesOwed"`
}

type SafetyStats struct {
	Total int `json:"total"`
}

// ViolationItem is one violation normalized across HPD and DOB.
type ViolationItem struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	Class       string `json:"class,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Unit        string `json:"unit,omitempty"`
	Story       string `json:"story,omitempty"`
	Category    string `json:"category"`
}

// ComplaintsSection covers HPD and DOB complaints plus 311 requests.
type ComplaintsSection struct {
	HPD        HPDComplaintStats `json:"hpd"`
	DOB        DOBComplaintStats `json:"dob"`
	SR311      SR311Stats        `json:"sr311"`
	Recent     []ComplaintItem   `json:"recent"`
	ByCategory []CategoryShare   `json:"byCategory"`
}

type HPDComplaintStats struct {
	Total        int            `json:"total"`
	RecentYear   int            `json:"recentYear"`
	HeatHotWater int            `json:"heatHotWater"`
	ByYear       map[string]int `json:"byYear"`
}

type DOBComplaintStats struct {
	Total      int `json:"total"`
	RecentYear int `json:"recentYear"`
}

type SR311Stats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

// ComplaintItem is one complaint normalized across HPD, DOB, and 311.
type ComplaintItem struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Descriptor string `json:"descriptor,omitempty"`
	Status     string `json:"status"`
	Unit       string `json:"unit,omitempty"`
}

// LitigationsSection covers HPD housing litigation.
type LitigationsSection struct {
	Total          int              `json:"total"`
	Open           int              `json:"open"`
	TotalPenalties float64          `json:"totalPenalties"`
	ByType         map[string]int   `json:"byType"`
	Recent         []LitigationItem `json:"recent"`
}

type LitigationItem struct {
	ID           string   `json:"id"`
	CaseType     string   `json:"caseType"`
	CaseOpenDate string   `json:"caseOpenDate"`
	CaseStatus   string   `json:"caseStatus"`
	Penalty      *float64 `json:"penalty"`
	FindingDate  string   `json:"findingDate,omitempty"`
}

// ChargesSection covers HPD emergency repair charges.
type ChargesSection struct {
	Total       int     `json:"total"`
	TotalAmount float64 `json:"totalAmount"`
}

// EvictionsSection covers executed marshal evictions and housing court
// filings.
type EvictionsSection struct {
	Total      int            `json:"total"`
	Last3Years int            `json:"last3Years"`
	ByYear     map[string]int `json:"byYear"`
	Recent     []EvictionItem `json:"recent"`
	Filings    CourtFilings   `json:"filings"`
}

type EvictionItem struct {
	ID           string `json:"id"`
	ExecutedDate string `json:"executedDate"`
	Type         string `json:"type"`
	Marshal      string `json:"marshal,omitempty"`
}

type CourtFilings struct {
	Total      int               `json:"total"`
	Last3Years int               `json:"last3Years"`
	ByYear     map[string]int    `json:"byYear"`
	Recent     []CourtFilingItem `json:"recent"`
}

type CourtFilingItem struct {
	ID        string `json:"id"`
	FiledDate string `json:"filedDate"`
	CaseType  string `json:"caseType"`
	Status    string `json:"status"`
	CourtType string `json:"courtType"`
}

// SalesSection covers recorded sales of the parcel.
type SalesSection struct {
	Total          int        `json:"total"`
	Recent         []SaleItem `json:"recent"`
	LastSaleDate   string     `json:"lastSaleDate,omitempty"`
	LastSaleAmount *float64   `json:"lastSaleAmount,omitempty"`
	DeedRecords    int        `json:"deedRecords"`
}

type SaleItem struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// PermitsSection covers DOB job filings and issued permits.
type PermitsSection struct {
	Total            int          `json:"total"`
	MajorAlterations int          `json:"majorAlterations"`
	RecentActivity   int          `json:"recentActivity"`
	Issued           int          `json:"issued"`
	Recent           []PermitItem `json:"recent"`
}

type PermitItem struct {
	JobNumber     string   `json:"jobNumber"`
	JobType       string   `json:"jobType"`
	JobTypeDesc   string   `json:"jobTypeDesc"`
	FilingDate    string   `json:"filingDate"`
	JobStatus     string   `json:"jobStatus"`
	JobStatusDesc string   `json:"jobStatusDesc"`
	WorkType      string   `json:"workType,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost"`
}

// RodentsSection covers DOHMH rodent inspections.
type RodentsSection struct {
	TotalInspections int          `json:"totalInspections"`
	Failed           int          `json:"failed"`
	Passed           int          `json:"passed"`
	Recent           []RodentItem `json:"recent"`
}

type RodentItem struct {
	Date   string `json:"date"`
	Result string `json:"result"`
	Type   string `json:"type"`
}

// BedbugsSection covers DHCR bedbug filings.
type BedbugsSection struct {
	Reports        int    `json:"reports"`
	LastReportDate string `json:"lastReportDate,omitempty"`
}

// Programs flags enforcement and assistance program membership.
type Programs struct {
	AEP              bool `json:"aep"`
	CONH             bool `json:"conh"`
	SpeculationWatch bool `json:"speculationWatch"`
	Subsidized       bool `json:"subsidized"`
	NYCHA            bool `json:"nycha"`
	VacateOrder      bool `json:"vacateOrder"`
}

// Landlord is the registered owner with contacts and portfolio.
type Landlord struct {
	Name                string              `json:"name"`
	Type                string              `json:"type"`
	RegistrationID      string              `json:"registrationId"`
	RegistrationDate    string              `json:"registrationDate,omitempty"`
	RegistrationExpires string              `json:"registrationExpires,omitempty"`
	ManagementCompany   string              `json:"managementCompany,omitempty"`
	Owners              []Contact           `json:"owners"`
	Agents              []Contact           `json:"agents"`
	SiteManagers        []Contact           `json:"siteManagers"`
	AllContacts         []Contact           `json:"allContacts"`
	PortfolioSize       int                 `json:"portfolioSize"`
	Portfolio           []PortfolioBuilding `json:"portfolio"`
}

// Contact is one HPD registration contact.
type Contact struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Corporation string `json:"corporation,omitempty"`
	Address     string `json:"address,omitempty"`
}

// PortfolioBuilding is another building under the same registration.
type PortfolioBuilding struct {
	BBL     string `json:"bbl"`
	Address string `json:"address"`
	Borough string `json:"borough"`
	Zipcode string `json:"zipcode"`
}

// TimelineEvent is one entry of the merged building history.
type TimelineEvent struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Status      string `json:"status,omitempty"`
}

// MonthlyTrendPoint is one month of violation and complaint volume.
type MonthlyTrendPoint struct {
	Month         string `json:"month"`
	Year          int    `json:"year"`
	MonthYear     string `json:"monthYear"`
	HPDViolations int    `json:"hpdViolations"`
	DOBViolations int    `json:"dobViolations"`
	Complaints    int    `json:"complaints"`
	Total         int    `json:"total"`
}

// YearlyStat is one year of headline counts.
type YearlyStat struct {
	Year          int `json:"year"`
	HPDViolations int `json:"hpdViolations"`
	HPDClassC     int `json:"hpdClassC"`
	DOBViolations int `json:"dobViolations"`
	Complaints    int `json:"complaints"`
	Evictions     int `json:"evictions"`
}

// SignalsSection carries the decision-first signal windows and series.
type SignalsSection struct {
	Windows map[string]signals.Window `json:"windows"`
	Series  SignalSeries              `json:"series"`
}

type SignalSeries struct {
	Daily30   []signals.SeriesPoint `json:"daily30"`
	Weekly90  []signals.SeriesPoint `json:"weekly90"`
	Monthly36 []signals.SeriesPoint `json:"monthly36"`
}

// CrimeSection covers NYPD complaints near the parcel, trailing year.
type CrimeSection struct {
	Total   int         `json:"total"`
	Violent int         `json:"violent"`
	Score   int         `json:"score"`
	Level   string      `json:"level"`
	ByType  []TypeCount `json:"byType"`
}

// ShootingsSection covers NYPD shooting incidents nearby, trailing 3 years.
type ShootingsSection struct {
	Total  int            `json:"total"`
	Fatal  int            `json:"fatal"`
	ByYear map[string]int `json:"byYear"`
	Score  int            `json:"score"`
	Level  string         `json:"level"`
}

// TrafficSection covers motor vehicle crashes nearby, trailing 2 years.
type TrafficSection struct {
	Crashes              int    `json:"crashes"`
	TotalInjuries        int    `json:"totalInjuries"`
	TotalFatalities      int    `json:"totalFatalities"`
	PedestrianInjuries   int    `json:"pedestrianInjuries"`
	PedestrianFatalities int    `json:"pedestrianFatalities"`
	CyclistInjuries      int    `json:"cyclistInjuries"`
	Score                int    `json:"score"`
	Level                string `json:"level"`
}

// CoolingTowersSection covers registered cooling towers (Legionella risk).
type CoolingTowersSection struct {
	HasTower          bool   `json:"hasTower"`
	Count             int    `json:"count"`
	LastCertification string `json:"lastCertification,omitempty"`
	RiskNote          string `json:"riskNote,omitempty"`
}

// TaxExemptionsSection covers J-51 and 421-a style exemptions.
type TaxExemptionsSection struct {
	HasJ51                    bool            `json:"hasJ51"`
	Has421a                   bool            `json:"has421a"`
	RentStabilizedByExemption bool            `json:"rentStabilizedByExemption"`
	ExemptionExpiration       string          `json:"exemptionExpiration,omitempty"`
	Programs                  []ExemptionItem `json:"programs"`
	Note                      string          `json:"note,omitempty"`
}

type ExemptionItem struct {
	Program   string `json:"program"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Status    string `json:"status"`
}

// TaxLiensSection covers tax lien sale history.
type TaxLiensSection struct {
	HasLien      bool       `json:"hasLien"`
	Count        int        `json:"count"`
	LastSaleDate string     `json:"lastSaleDate,omitempty"`
	History      []LienItem `json:"history"`
	Warning      string     `json:"warning,omitempty"`
}

type LienItem struct {
	Date   string `json:"date"`
	Amount string `json:"amount,omitempty"`
	Status string `json:"status"`
}

// RestaurantsSection covers ground-floor restaurant inspections.
type RestaurantsSection struct {
	NearbyCount        int    `json:"nearbyCount"`
	CriticalViolations int    `json:"criticalViolations"`
	PestViolations     int    `json:"pestViolations"`
	AvgGrade           string `json:"avgGrade,omitempty"`
	Note               string `json:"note,omitempty"`
}

// NoiseSection covers 311 noise complaints near the parcel.
type NoiseSection struct {
	Total  int         `json:"total"`
	ByType []TypeCount `json:"byType"`
	Level  string      `json:"level"`
}

// RentFairnessSection carries the HUD Fair Market Rent benchmark.
type RentFairnessSection struct {
	HUDFMR       FMRBenchmark `json:"hudFMR"`
	Neighborhood string       `json:"neighborhood"`
	Note         string       `json:"note"`
	Tip          string       `json:"tip"`
}

type FMRBenchmark struct {
	Studio     int    `json:"studio"`
	OneBr      int    `json:"oneBr"`
	TwoBr      int    `json:"twoBr"`
	ThreeBr    int    `json:"threeBr"`
	FourBr     int    `json:"fourBr"`
	Year       int    `json:"year"`
	Source     string `json:"source"`
	IsZipLevel bool   `json:"isZipLevel"`
}

// PestsSection is the composite pest picture.
type PestsSection struct {
	Score                    int    `json:"score"`
	RodentFails              int    `json:"rodentFails"`
	BedbugReports            int    `json:"bedbugReports"`
	RestaurantPestViolations int    `json:"restaurantPestViolations"`
	Level                    string `json:"level"`
}

// FinancialSection is the composite financial distress picture.
type FinancialSection struct {
	Score            int     `json:"score"`
	TaxLiens         int     `json:"taxLiens"`
	EmergencyCharges float64 `json:"emergencyCharges"`
	Level            string  `json:"level"`
}

// FloodSection covers FEMA flood zones and hurricane evacuation zones.
type FloodSection struct {
	InFloodZone     bool   `json:"inFloodZone"`
	FloodZoneType   string `json:"floodZoneType,omitempty"`
	FloodRisk       string `json:"floodRisk"`
	InHurricaneZone bool   `json:"inHurricaneZone"`
	HurricaneZone   string `json:"hurricaneZone,omitempty"`
}

// TransitSection covers nearby subway and bike share access.
type TransitSection struct {
	Score            int          `json:"score"`
	SubwayStations   int          `json:"subwayStations"`
	BusStops         int          `json:"busStops"`
	CitiBikeStations int          `json:"citiBikeStations"`
	NearestSubway    *SubwayStop  `json:"nearestSubway"`
	NearbySubways    []SubwayStop `json:"nearbySubways"`
}

type SubwayStop struct {
	Name     string `json:"name"`
	Line     string `json:"line"`
	Distance *int   `json:"distance"`
}

// SchoolsSection covers schools within walking distance.
type SchoolsSection struct {
	Count  int      `json:"count"`
	Nearby []School `json:"nearby"`
}

type School struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Grades   string `json:"grades,omitempty"`
	Address  string `json:"address,omitempty"`
	Distance int    `json:"distance"`
}

// ParksSection covers parks within walking distance.
type ParksSection struct {
	Count      int    `json:"count"`
	TotalAcres float64 `json:"totalAcres"`
	Nearby     []Park `json:"nearby"`
}

type Park struct {
	Name  string   `json:"name"`
	Type  string   `json:"type,omitempty"`
	Acres *float64 `json:"acres"`
}

// TreesSection covers street trees on the block.
type TreesSection struct {
	Count           int            `json:"count"`
	HealthyCount    int            `json:"healthyCount"`
	HealthBreakdown map[string]int `json:"healthBreakdown"`
}

// AmenitiesSection covers sidewalk cafes and public wifi nearby.
type AmenitiesSection struct {
	SidewalkCafes int `json:"sidewalkCafes"`
	WifiHotspots  int `json:"wifiHotspots"`
}
