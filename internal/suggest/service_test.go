package suggest

import (
	"context"
	"testing"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

type stubStore struct {
	names     []string
	lastLimit int
}

func (s *stubStore) QueryCandidates(_ context.Context, _ model.EntityKind, _ []services.Predicate, _ int) ([]model.Candidate, bool, error) {
	return nil, false, nil
}

func (s *stubStore) GetHospital(_ context.Context, _ int64) (*model.Hospital, error) {
	return nil, nil
}

func (s *stubStore) GetDoctor(_ context.Context, _ int64) (*model.Doctor, error) {
	return nil, nil
}

func (s *stubStore) SuggestNames(_ context.Context, _ model.EntityKind, _ string, limit int) ([]string, error) {
	s.lastLimit = limit
	return s.names, nil
}

func TestSuggestRanksByEditDistance(t *testing.T) {
	store := &stubStore{names: []string{
		"深圳市人民医院附属门诊部",
		"深圳人民医院",
		"深圳市人民医院",
	}}
	service := NewService(store)

	names, err := service.Suggest(context.Background(), model.EntityHospital, "深圳市人民医院", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if names[0] != "深圳市人民医院" {
		t.Errorf("Expected the exact name first, got %q", names[0])
	}
	if names[1] != "深圳人民医院" {
		t.Errorf("Expected the one-edit name second, got %q", names[1])
	}
}

func TestSuggestOverfetchesAndTruncates(t *testing.T) {
	store := &stubStore{names: []string{"一院", "二院", "三院", "四院", "五院"}}
	service := NewService(store)

	names, err := service.Suggest(context.Background(), model.EntityHospital, "医院", 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.lastLimit != 6 {
		t.Errorf("Expected the store to be asked for 6 names, got %d", store.lastLimit)
	}
	if len(names) != 2 {
		t.Errorf("Expected results truncated to 2, got %d", len(names))
	}
}

func TestSuggestEmptyKeyword(t *testing.T) {
	service := NewService(&stubStore{})

	names, err := service.Suggest(context.Background(), model.EntityHospital, "   ", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if names != nil {
		t.Errorf("Expected nil for empty keyword, got %v", names)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"医院", "", 2},
		{"深圳市人民医院", "深圳人民医院", 1},
		{"骨科", "眼科", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.expected {
			t.Errorf("levenshtein(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
		}
	}
}
