package model

import "time"

// FilterEvent represents a single filter request for analytics tracking
type FilterEvent struct {
	EntityKind   EntityKind    `json:"entity_kind"`
	RequestType  string        `json:"request_type"` // "structured" or "ai_query"
	Department   string        `json:"department,omitempty"`
	CityCode     string        `json:"city_code,omitempty"`
	SortKey      string        `json:"sort_key"`
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Fallback     bool          `json:"fallback"` // AI query degraded to empty criteria
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularDimension represents aggregated counts for one filter dimension value
type PopularDimension struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// AnalyticsSummary represents the aggregated filter analytics
type AnalyticsSummary struct {
	TotalRequests      int                `json:"total_requests"`
	StructuredRequests int                `json:"structured_requests"`
	AIQueryRequests    int                `json:"ai_query_requests"`
	AIFallbacks        int                `json:"ai_fallbacks"`
	AvgResponseTimeMs  int64              `json:"avg_response_time_ms"`
	AvgResultCount     float64            `json:"avg_result_count"`
	PopularDepartments []PopularDimension `json:"popular_departments"`
	PopularCities      []PopularDimension `json:"popular_cities"`
}
