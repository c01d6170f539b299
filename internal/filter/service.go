// Package filter implements the result assembler: it runs the predicate
// query against the catalog store, scores every candidate, sorts and
// paginates. The pipeline holds no state between requests.
package filter

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/predicate"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/scoring"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// Service assembles paged, scored results for normalized criteria.
type Service struct {
	store        services.CatalogStore
	scorer       *scoring.Engine
	pool         *ants.Pool
	candidateCap int
}

// NewService creates a result assembler. The worker pool bounds the scoring
// fan-out; poolSize <= 0 falls back to a single worker.
func NewService(store services.CatalogStore, scorer *scoring.Engine, candidateCap, poolSize int) (*Service, error) {
	if poolSize <= 0 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	if candidateCap <= 0 {
		candidateCap = 5000
	}
	return &Service{
		store:        store,
		scorer:       scorer,
		pool:         pool,
		candidateCap: candidateCap,
	}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Assemble runs the full pipeline: predicates, candidate query, scoring,
// sort, pagination. The whole matching set (bounded by the candidate cap) is
// fetched before pagination, because scoring and sorting must see every
// match, not just one page.
func (s *Service) Assemble(ctx context.Context, criteria services.Criteria) (*services.PagedResult, error) {
	predicates := predicate.Build(criteria)

	candidates, capped, err := s.store.QueryCandidates(ctx, criteria.EntityKind, predicates, s.candidateCap)
	if err != nil {
		return nil, err
	}
	if capped {
		// Never silently truncate: the caller must narrow the criteria.
		return nil, internalErrors.NewResultSetTooLargeError(s.candidateCap)
	}

	breakdowns := s.scoreAll(candidates, criteria)

	sortKey := criteria.SortKey
	if sortKey == services.SortDistance {
		// No geodistance input in this pipeline; documented fallback.
		log.Printf("Warning: sort key 'distance' is not backed by geodistance data, falling back to relevance ordering")
		sortKey = services.SortRelevance
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}

	switch sortKey {
	case services.SortRelevance:
		// Stable: equal scores retain catalog store iteration order.
		sort.SliceStable(order, func(a, b int) bool {
			return breakdowns[order[a]].Total > breakdowns[order[b]].Total
		})
	case services.SortRating:
		sort.SliceStable(order, func(a, b int) bool {
			return candidates[order[a]].Rating > candidates[order[b]].Rating
		})
	default:
		// SortDefault keeps store order.
	}

	total := len(candidates)
	totalPages := (total + criteria.PageSize - 1) / criteria.PageSize

	start := (criteria.Page - 1) * criteria.PageSize
	end := start + criteria.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	withScores := sortKey == services.SortRelevance
	items := make([]services.ScoredCandidate, 0, end-start)
	for _, idx := range order[start:end] {
		item := services.ScoredCandidate{Candidate: candidates[idx]}
		if withScores {
			score := breakdowns[idx].Total
			item.MatchScore = &score
		}
		items = append(items, item)
	}

	return &services.PagedResult{
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages,
		Items:      items,
		QueryID:    uuid.New().String(),
	}, nil
}

// scoreAll fans the pure score computation out over the worker pool and
// collects the breakdowns in candidate order. Results are index-addressed so
// the workers share nothing but the slice.
func (s *Service) scoreAll(candidates []model.Candidate, criteria services.Criteria) []model.ScoreBreakdown {
	breakdowns := make([]model.ScoreBreakdown, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		i := i
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			breakdowns[i] = s.scorer.Score(candidates[i], criteria)
		}); err != nil {
			// Pool rejected the task (released or overloaded); score inline.
			breakdowns[i] = s.scorer.Score(candidates[i], criteria)
			wg.Done()
		}
	}
	wg.Wait()

	return breakdowns
}
