package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// FilterHandler handles structured filter requests.
// Request Body: services.FilterRequest
func (api *API) FilterHandler(c *gin.Context) {
	startTime := time.Now()

	var req services.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	normalized, err := api.normalizer.NormalizeStructured(req)
	if err != nil {
		api.sendPipelineError(c, err)
		return
	}

	result, err := api.filterer.Assemble(c.Request.Context(), normalized)
	if err != nil {
		api.sendPipelineError(c, err)
		return
	}

	api.trackEvent(normalized, "structured", false, time.Since(startTime), result.Total)

	c.JSON(http.StatusOK, result)
}

// AIQueryRequest wraps the natural-language payload with the target entity kind.
type AIQueryRequest struct {
	services.TextQueryRequest
	EntityKind string `json:"entity_kind,omitempty"`
}

// AIQueryHandler handles natural-language filter requests. The query is
// translated into structured criteria; a failed translation degrades to an
// unfiltered, relevance-ordered result rather than an error.
// Request Body: AIQueryRequest
func (api *API) AIQueryHandler(c *gin.Context) {
	startTime := time.Now()

	var req AIQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	kind := model.EntityHospital
	if req.EntityKind != "" {
		parsed, err := model.ParseEntityKind(req.EntityKind)
		if err != nil {
			SendInvalidCriteriaError(c, "entity_kind", err.Error())
			return
		}
		kind = parsed
	}

	normalized, err := api.normalizer.NormalizeText(c.Request.Context(), kind, req.TextQueryRequest)
	if err != nil {
		api.sendPipelineError(c, err)
		return
	}

	result, err := api.filterer.Assemble(c.Request.Context(), normalized)
	if err != nil {
		api.sendPipelineError(c, err)
		return
	}

	fallback := isUnfiltered(normalized)
	api.trackEvent(normalized, "ai_query", fallback, time.Since(startTime), result.Total)

	c.JSON(http.StatusOK, result)
}

// sendPipelineError maps filter pipeline errors onto HTTP status codes.
func (api *API) sendPipelineError(c *gin.Context, err error) {
	var invalidErr *internalErrors.InvalidCriteriaError
	if errors.As(err, &invalidErr) {
		SendInvalidCriteriaError(c, invalidErr.Field, invalidErr.Message)
		return
	}

	switch {
	case errors.Is(err, internalErrors.ErrInvalidCriteria):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidCriteria, err.Error())
	case errors.Is(err, internalErrors.ErrResultSetTooLarge):
		SendResultSetTooLargeError(c, err)
	case errors.Is(err, internalErrors.ErrCatalogStoreUnavailable):
		SendStoreUnavailableError(c, err)
	default:
		SendInternalError(c, "filter assembly", err)
	}
}

// trackEvent records the request for analytics without blocking the response.
func (api *API) trackEvent(criteria services.Criteria, requestType string, fallback bool, responseTime time.Duration, resultCount int) {
	event := model.FilterEvent{
		EntityKind:   criteria.EntityKind,
		RequestType:  requestType,
		SortKey:      string(criteria.SortKey),
		ResponseTime: responseTime,
		ResultCount:  resultCount,
		Fallback:     fallback,
	}
	if criteria.DepartmentName != nil {
		event.Department = *criteria.DepartmentName
	}
	if criteria.CityCode != nil {
		event.CityCode = *criteria.CityCode
	}

	go api.analytics.TrackFilterEvent(event)
}

// isUnfiltered reports whether criteria carry no filter dimensions at all,
// which for an AI query means the translator's draft was discarded.
func isUnfiltered(c services.Criteria) bool {
	return c.ProvinceCode == nil && c.CityCode == nil && c.AreaCode == nil &&
		c.TierLevel == nil && c.DepartmentName == nil && c.InsuranceRequired == nil &&
		c.KeywordText == nil && c.RatingFloor == nil && c.RatingCeiling == nil
}
