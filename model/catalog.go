// Package model defines the catalog entities and scoring projections used
// throughout the filtering engine.
package model

import (
	"fmt"
	"time"
)

// EntityKind identifies which catalog the engine is filtering.
type EntityKind string

const (
	EntityHospital EntityKind = "hospital"
	EntityDoctor   EntityKind = "doctor"
)

// ParseEntityKind parses the wire value of an entity kind. Unknown values are
// an error, never a silent default.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case EntityHospital, EntityDoctor:
		return EntityKind(s), nil
	}
	return "", fmt.Errorf("unknown entity kind '%s'", s)
}

// TierLevel is the ordered hospital accreditation tier. Lower rank means a
// higher tier (Tier3A is rank 0).
type TierLevel string

const (
	Tier3A    TierLevel = "grade3A"
	Tier3B    TierLevel = "grade3B"
	Tier2A    TierLevel = "grade2A"
	Tier2B    TierLevel = "grade2B"
	TierOther TierLevel = "other"
)

var tierRanks = map[TierLevel]int{
	Tier3A:    0,
	Tier3B:    1,
	Tier2A:    2,
	Tier2B:    3,
	TierOther: 4,
}

// ParseTierLevel parses the wire value of a tier level. Unknown values are an
// error, never a silent default.
func ParseTierLevel(s string) (TierLevel, error) {
	if _, ok := tierRanks[TierLevel(s)]; !ok {
		return "", fmt.Errorf("unknown tier level '%s'", s)
	}
	return TierLevel(s), nil
}

// Rank returns the position of the tier in the ordering, 0 being the highest
// tier. Unknown tiers rank below every known tier.
func (t TierLevel) Rank() int {
	if rank, ok := tierRanks[t]; ok {
		return rank
	}
	return len(tierRanks)
}

// Hospital is a catalog row as stored in the Catalog Store.
type Hospital struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Tier             TierLevel `json:"tier_level"`
	ProvinceCode     string    `json:"province_code"`
	CityCode         string    `json:"city_code"`
	AreaCode         string    `json:"area_code"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	KeyDepartments   []string  `json:"key_departments"`
	Insurance        bool      `json:"insurance"`
	Rating           float64   `json:"rating"`
	ReviewCount      int       `json:"review_count"`
	MedicalEquipment string    `json:"medical_equipment,omitempty"`
	Intro            string    `json:"intro,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Doctor is a catalog row as stored in the Catalog Store. Geography, tier and
// insurance are attributes of the owning hospital.
type Doctor struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	HospitalID      int64     `json:"hospital_id"`
	HospitalName    string    `json:"hospital_name"`
	Title           string    `json:"title"`
	Specialty       string    `json:"specialty"`
	ConsultationFee float64   `json:"consultation_fee"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Candidate is the read-only projection of a catalog entity handed to the
// Scoring Engine. For doctors, Tier, the geography codes and Insurance are
// taken from the owning hospital. Candidates are fetched fresh per request
// and never mutated.
type Candidate struct {
	ID           int64      `json:"id"`
	Kind         EntityKind `json:"kind"`
	Name         string     `json:"name"`
	Tier         TierLevel  `json:"tier_level"`
	ProvinceCode string     `json:"province_code"`
	CityCode     string     `json:"city_code"`
	AreaCode     string     `json:"area_code"`
	Departments  []string   `json:"departments"`
	Insurance    bool       `json:"insurance"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"review_count"`
}

// Score dimension names used in ScoreBreakdown.Contributions.
const (
	DimensionTier       = "tier"
	DimensionGeography  = "geography"
	DimensionDepartment = "department"
	DimensionInsurance  = "insurance"
	DimensionRating     = "rating"
)

// ScoreBreakdown is the per-candidate scoring output. Contributions holds the
// raw weighted contribution per dimension; Applicable is the denominator (the
// sum of weights for dimensions the caller actually requested). Breakdowns
// are ephemeral and discarded after response assembly.
type ScoreBreakdown struct {
	Total         int                `json:"total"`
	Contributions map[string]float64 `json:"contributions"`
	Applicable    float64            `json:"applicable_weight"`
}
