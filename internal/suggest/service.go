// Package suggest produces name suggestions for a partial keyword. Store
// lookups do the coarse containment match; results are re-ranked by edit
// distance so near-misses from sloppy input still surface first.
package suggest

import (
	"context"
	"sort"
	"strings"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

const defaultLimit = 10

// Service serves typo-tolerant name suggestions out of the catalog store.
type Service struct {
	store services.CatalogStore
}

// NewService creates a suggestion service.
func NewService(store services.CatalogStore) *Service {
	return &Service{store: store}
}

// Suggest returns up to limit entity names for the keyword. The store
// over-fetches so the edit-distance re-rank has something to work with.
func (s *Service) Suggest(ctx context.Context, kind model.EntityKind, keyword string, limit int) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	names, err := s.store.SuggestNames(ctx, kind, keyword, limit*3)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(names, func(a, b int) bool {
		return levenshtein(keyword, names[a]) < levenshtein(keyword, names[b])
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// levenshtein computes the edit distance between two strings, by rune so
// non-ASCII names are measured correctly.
func levenshtein(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
