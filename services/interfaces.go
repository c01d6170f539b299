// Package services defines the shared data contracts and collaborator
// interfaces of the filtering engine: the canonical Criteria value, the
// predicate list handed to the Catalog Store, and the paged result returned
// to callers.
package services

import (
	"context"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
)

// SortKey selects the ordering of assembled results.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortDistance  SortKey = "distance"
	SortDefault   SortKey = "default"
)

// ParseSortKey parses the wire value of a sort key. Unknown values are an
// error, never a silent default; absence is handled by the normalizer.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortRelevance, SortRating, SortDistance, SortDefault:
		return SortKey(s), true
	}
	return "", false
}

// Criteria is the canonical, validated representation of a filter request.
// It is constructed once per request by the normalizer and immutable
// thereafter. Every optional field is a pointer: absence is first-class,
// never encoded as an empty string or zero value.
type Criteria struct {
	EntityKind model.EntityKind

	ProvinceCode *string
	CityCode     *string
	AreaCode     *string

	TierLevel         *model.TierLevel
	DepartmentName    *string
	InsuranceRequired *bool
	KeywordText       *string

	RatingFloor   *float64
	RatingCeiling *float64

	SortKey  SortKey
	Page     int
	PageSize int
}

// Predicate operators understood by the Catalog Store.
const (
	OpEquals   = "eq"
	OpGte      = "gte"
	OpLte      = "lte"
	OpContains = "contains"
)

// Predicate is one atomic filter condition handed to the storage layer as a
// (dimension, operator, value) triple. A predicate with a non-empty Or slice
// is an OR-group of its sub-predicates and its own triple is unused.
type Predicate struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
	Or       []Predicate `json:"or,omitempty"`
}

// Dimension names emitted by the predicate builder. The store maps them to
// its own columns per entity kind.
const (
	FieldTierLevel    = "tier_level"
	FieldProvinceCode = "province_code"
	FieldCityCode     = "city_code"
	FieldAreaCode     = "area_code"
	FieldInsurance    = "insurance"
	FieldDepartment   = "department"
	FieldName         = "name"
	FieldRating       = "rating"
)

// FilterRequest is the inbound structured filter payload, before
// normalization. All fields except pagination are optional; empty strings
// mean absent. The intent translator returns a draft of this same shape.
type FilterRequest struct {
	EntityKind        string   `json:"entity_kind"`
	ProvinceCode      string   `json:"province_code,omitempty"`
	CityCode          string   `json:"city_code,omitempty"`
	AreaCode          string   `json:"area_code,omitempty"`
	TierLevel         string   `json:"tier_level,omitempty"`
	DepartmentName    string   `json:"department_name,omitempty"`
	InsuranceRequired *bool    `json:"insurance_required,omitempty"`
	KeywordText       string   `json:"keyword_text,omitempty"`
	RatingFloor       *float64 `json:"rating_floor,omitempty"`
	RatingCeiling     *float64 `json:"rating_ceiling,omitempty"`
	SortKey           string   `json:"sort_key,omitempty"`
	Page              int      `json:"page"`
	PageSize          int      `json:"page_size"`
}

// TextQueryRequest is the inbound natural-language payload.
type TextQueryRequest struct {
	Query    string `json:"query" binding:"required"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// ScoredCandidate is one item of a paged result. MatchScore is present only
// for relevance-ordered responses.
type ScoredCandidate struct {
	model.Candidate
	MatchScore *int `json:"match_score,omitempty"`
}

// PagedResult is the assembled response for one filter request.
type PagedResult struct {
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	Items      []ScoredCandidate `json:"items"`
	QueryID    string            `json:"query_id"`
}

// CatalogStore is the external read-only source of hospitals and doctors.
// QueryCandidates returns at most cap candidates matching every predicate;
// the bool reports whether the cap was hit. The store is never written to by
// this engine.
type CatalogStore interface {
	QueryCandidates(ctx context.Context, kind model.EntityKind, predicates []Predicate, cap int) ([]model.Candidate, bool, error)
	GetHospital(ctx context.Context, id int64) (*model.Hospital, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	SuggestNames(ctx context.Context, kind model.EntityKind, keyword string, limit int) ([]string, error)
}

// IntentTranslator converts free text into a best-effort structured draft.
// Implementations are network-bound and non-deterministic; callers must
// supply a context with a deadline and treat any error as recoverable.
type IntentTranslator interface {
	Translate(ctx context.Context, query string) (*FilterRequest, error)
}

// Filterer runs the full filter pipeline for an already-normalized Criteria.
type Filterer interface {
	Assemble(ctx context.Context, criteria Criteria) (*PagedResult, error)
}
