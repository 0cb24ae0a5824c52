package core

import (
	"encoding/json"
	"fmt"
)

// Dataset column names shared between the store and the analysis layer.
const (
	ColName             = "name"
	ColSpecialties      = "specialties"
	ColProcedure        = "procedure"
	ColEquipment        = "equipment"
	ColCapability       = "capability"
	ColCity             = "address_city"
	ColRegion           = "address_stateOrRegion"
	ColCountry          = "address_country"
	ColFacilityType     = "facilityTypeId"
	ColOrganizationType = "organization_type"
	ColSourceURL        = "source_url"
	ColCapacity         = "capacity"
	ColNumberDoctors    = "numberDoctors"
)

// Record is one row of the facility/NGO dataset.
//
// Typed fields cover the columns the engine reasons about; Fields keeps
// the raw cell value of every column (modeled or not) so unmodeled data
// passes through to consumers untouched. Multi-valued columns are parsed
// leniently at load time: a malformed cell yields an empty slice here,
// while the raw value stays available in Fields for strict re-parsing.
type Record struct {
	Name             string
	Specialties      []string
	Procedures       []string
	Equipment        []string
	Capabilities     []string
	City             string
	Region           string
	Country          string
	FacilityType     string
	OrganizationType string
	SourceURL        string

	// Fields maps every dataset column to its raw cell value.
	Fields map[string]string
}

// Citation is a traceable pointer from an analytical claim back to its
// source row. Row always resolves to a live Record in the store the
// claim was computed from.
type Citation struct {
	Row    int    `json:"row"`
	Source string `json:"source"`
	Name   string `json:"name"`
}

// SearchResult is a single ranked retrieval hit with full provenance.
type SearchResult struct {
	Rank             int               `json:"rank"`
	Distance         float64           `json:"distance"`
	RelevanceScore   float64           `json:"relevance_score"`
	Text             string            `json:"text"`
	Name             string            `json:"name"`
	SourceURL        string            `json:"source_url"`
	RowIndex         int               `json:"row_index"`
	OrganizationType string            `json:"organization_type"`
	FullRecord       map[string]string `json:"full_record"`
	Citation         Citation          `json:"citation"`
}

// RelevanceScore converts a nearest-neighbor distance into a similarity
// score in (0, 1], strictly decreasing in distance.
func RelevanceScore(distance float64) float64 {
	return 1 / (1 + distance)
}

// Severity classifies the shortage of a specialty within a region.
// Ordering matters: SeverityNone < SeverityModerate < SeveritySevere <
// SeverityCritical.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityModerate
	SeveritySevere
	SeverityCritical
)

// String returns the lowercase name used on the wire.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalJSON encodes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// FacilitySummary is the compact facility listing inside a DesertAnalysis.
type FacilitySummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	RowIndex int    `json:"row_index"`
}

// DesertAnalysis is the result of a coverage-gap detection run.
//
// RegionalFacilities and SpecialtyFacilities are only present when the
// corresponding constraint was given.
type DesertAnalysis struct {
	Specialty           string            `json:"specialty"`
	Region              string            `json:"region"`
	TotalFacilities     int               `json:"total_facilities"`
	RegionalFacilities  *int              `json:"regional_facilities,omitempty"`
	SpecialtyFacilities *int              `json:"specialty_facilities,omitempty"`
	IsMedicalDesert     bool              `json:"is_medical_desert"`
	DesertSeverity      Severity          `json:"desert_severity"`
	AvailableFacilities []FacilitySummary `json:"available_facilities"`
	Citations           []Citation        `json:"citations"`
}

// ValidationReport is the result of validating a single facility's claims.
type ValidationReport struct {
	FacilityName          string   `json:"facility_name"`
	CompletenessScore     float64  `json:"completeness_score"`
	SuspiciousClaims      []string `json:"suspicious_claims"`
	MissingCriticalFields []string `json:"missing_critical_fields"`
	DataQualityIssues     []string `json:"data_quality_issues"`
	Citation              Citation `json:"citation"`
}
