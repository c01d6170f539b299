// Package analytics tracks filter requests in memory and aggregates them for
// the analytics endpoint.
package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
)

const maxEventsToKeep = 10000 // Keep last 10k events for performance

// Service implements analytics tracking and reporting
type Service struct {
	mutex  sync.RWMutex
	events []model.FilterEvent
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{events: make([]model.FilterEvent, 0)}
}

// TrackFilterEvent records a new filter event
func (s *Service) TrackFilterEvent(event model.FilterEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// Summary aggregates the tracked events.
func (s *Service) Summary() model.AnalyticsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.AnalyticsSummary{TotalRequests: len(s.events)}
	if len(s.events) == 0 {
		return summary
	}

	var (
		totalResponse time.Duration
		totalResults  int
		departments   = make(map[string]int)
		cities        = make(map[string]int)
	)

	for _, event := range s.events {
		switch event.RequestType {
		case "ai_query":
			summary.AIQueryRequests++
			if event.Fallback {
				summary.AIFallbacks++
			}
		default:
			summary.StructuredRequests++
		}

		totalResponse += event.ResponseTime
		totalResults += event.ResultCount

		if event.Department != "" {
			departments[event.Department]++
		}
		if event.CityCode != "" {
			cities[event.CityCode]++
		}
	}

	summary.AvgResponseTimeMs = totalResponse.Milliseconds() / int64(len(s.events))
	summary.AvgResultCount = float64(totalResults) / float64(len(s.events))
	summary.PopularDepartments = topDimensions(departments, 10)
	summary.PopularCities = topDimensions(cities, 10)

	return summary
}

// topDimensions returns the n most frequent values, ties broken by value for
// a deterministic order.
func topDimensions(counts map[string]int, n int) []model.PopularDimension {
	dims := make([]model.PopularDimension, 0, len(counts))
	for value, count := range counts {
		dims = append(dims, model.PopularDimension{Value: value, Count: count})
	}
	sort.Slice(dims, func(a, b int) bool {
		if dims[a].Count != dims[b].Count {
			return dims[a].Count > dims[b].Count
		}
		return dims[a].Value < dims[b].Value
	})
	if len(dims) > n {
		dims = dims[:n]
	}
	return dims
}
