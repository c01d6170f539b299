// Package criteria converts inbound filter payloads, structured or free-text,
// into validated Criteria values. All validation failures surface here, at
// the boundary, never deeper in the pipeline.
package criteria

import (
	"context"
	"log"
	"strings"
	"time"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

const (
	minQueryLength = 2
	maxQueryLength = 500
)

// Normalizer validates filter requests and translates free-text queries into
// Criteria through the intent translator.
type Normalizer struct {
	translator        services.IntentTranslator
	translatorTimeout time.Duration
	defaultPageSize   int
	maxPageSize       int
}

// Options configures a Normalizer.
type Options struct {
	DefaultPageSize   int
	MaxPageSize       int
	TranslatorTimeout time.Duration
}

// NewNormalizer creates a Normalizer. The translator may be nil, in which
// case every free-text query takes the empty-criteria fallback.
func NewNormalizer(translator services.IntentTranslator, opts Options) *Normalizer {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 10
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.TranslatorTimeout <= 0 {
		opts.TranslatorTimeout = 3 * time.Second
	}
	return &Normalizer{
		translator:        translator,
		translatorTimeout: opts.TranslatorTimeout,
		defaultPageSize:   opts.DefaultPageSize,
		maxPageSize:       opts.MaxPageSize,
	}
}

// NormalizeStructured validates a structured filter payload and returns the
// canonical Criteria. Unknown enum values fail with an InvalidCriteria error
// naming the field; they are never silently defaulted. Empty strings are
// treated as absent fields.
func (n *Normalizer) NormalizeStructured(req services.FilterRequest) (services.Criteria, error) {
	var c services.Criteria

	kind, err := model.ParseEntityKind(strings.TrimSpace(req.EntityKind))
	if err != nil {
		return c, internalErrors.NewInvalidCriteriaError("entity_kind", err.Error())
	}
	c.EntityKind = kind

	c.ProvinceCode = optionalString(req.ProvinceCode)
	c.CityCode = optionalString(req.CityCode)
	c.AreaCode = optionalString(req.AreaCode)
	c.DepartmentName = optionalString(req.DepartmentName)
	c.KeywordText = optionalString(req.KeywordText)
	c.InsuranceRequired = req.InsuranceRequired

	if tier := strings.TrimSpace(req.TierLevel); tier != "" {
		parsed, err := model.ParseTierLevel(tier)
		if err != nil {
			return c, internalErrors.NewInvalidCriteriaError("tier_level", err.Error())
		}
		c.TierLevel = &parsed
	}

	if req.RatingFloor != nil {
		if *req.RatingFloor < 0 || *req.RatingFloor > 5 {
			return c, internalErrors.NewInvalidCriteriaError("rating_floor", "must be between 0.0 and 5.0")
		}
		c.RatingFloor = req.RatingFloor
	}
	if req.RatingCeiling != nil {
		if *req.RatingCeiling < 0 || *req.RatingCeiling > 5 {
			return c, internalErrors.NewInvalidCriteriaError("rating_ceiling", "must be between 0.0 and 5.0")
		}
		c.RatingCeiling = req.RatingCeiling
	}
	if c.RatingFloor != nil && c.RatingCeiling != nil && *c.RatingFloor > *c.RatingCeiling {
		return c, internalErrors.NewInvalidCriteriaError("rating_floor", "cannot exceed rating_ceiling")
	}

	if sortKey := strings.TrimSpace(req.SortKey); sortKey != "" {
		parsed, ok := services.ParseSortKey(sortKey)
		if !ok {
			return c, internalErrors.NewInvalidCriteriaError("sort_key", "unknown sort key '"+sortKey+"'")
		}
		c.SortKey = parsed
	} else {
		c.SortKey = services.SortDefault
	}

	if req.Page < 0 {
		return c, internalErrors.NewInvalidCriteriaError("page", "must be greater than 0")
	}
	c.Page = req.Page
	if c.Page == 0 {
		c.Page = 1
	}

	c.PageSize = req.PageSize
	if c.PageSize <= 0 {
		c.PageSize = n.defaultPageSize
	}
	if c.PageSize > n.maxPageSize {
		c.PageSize = n.maxPageSize
	}

	return c, nil
}

// NormalizeText converts a natural-language query into Criteria via the
// intent translator. The translator's draft is untrusted input and goes
// through the same structured-path validation. Any translator failure, and
// any draft that fails re-validation, degrades to the empty Criteria with the
// caller's pagination; TranslatorUnavailable never reaches the caller.
func (n *Normalizer) NormalizeText(ctx context.Context, kind model.EntityKind, req services.TextQueryRequest) (services.Criteria, error) {
	query := strings.TrimSpace(req.Query)
	if len([]rune(query)) < minQueryLength || len([]rune(query)) > maxQueryLength {
		return services.Criteria{}, internalErrors.NewInvalidCriteriaError("query", "length must be between 2 and 500 characters")
	}

	empty, err := n.NormalizeStructured(services.FilterRequest{
		EntityKind: string(kind),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return services.Criteria{}, err
	}
	// AI-driven discovery defaults to relevance ordering.
	empty.SortKey = services.SortRelevance

	if n.translator == nil {
		return empty, nil
	}

	// Strict timeout: a slow translator must never stall the request. If the
	// caller's context is cancelled the in-flight call is abandoned and the
	// fallback taken immediately.
	translateCtx, cancel := context.WithTimeout(ctx, n.translatorTimeout)
	defer cancel()

	draft, err := n.translator.Translate(translateCtx, query)
	if err != nil {
		log.Printf("Warning: intent translation failed, falling back to unfiltered criteria: %v", err)
		return empty, nil
	}

	draft.EntityKind = string(kind)
	draft.Page = req.Page
	draft.PageSize = req.PageSize
	draft.SortKey = string(services.SortRelevance)

	normalized, err := n.NormalizeStructured(*draft)
	if err != nil {
		log.Printf("Warning: discarding invalid translator draft: %v", err)
		return empty, nil
	}

	return normalized, nil
}

func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
