package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

func setupTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	store, err := NewCatalogStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedHospitals(t *testing.T, store *CatalogStore) []int64 {
	t.Helper()
	ctx := context.Background()

	hospitals := []model.Hospital{
		{
			Name: "深圳市人民医院", Tier: model.Tier3A,
			ProvinceCode: "440000", CityCode: "440300", AreaCode: "440305",
			KeyDepartments: []string{"心血管内科", "骨科"},
			Insurance:      true, Rating: 4.6, ReviewCount: 1200,
		},
		{
			Name: "深圳市中医院", Tier: model.Tier3B,
			ProvinceCode: "440000", CityCode: "440300", AreaCode: "440304",
			KeyDepartments: []string{"中医科", "康复科"},
			Insurance:      true, Rating: 4.2, ReviewCount: 800,
		},
		{
			Name: "广州市第一医院", Tier: model.Tier3A,
			ProvinceCode: "440000", CityCode: "440100", AreaCode: "440103",
			KeyDepartments: []string{"心内科", "呼吸内科"},
			Insurance:      false, Rating: 4.8, ReviewCount: 2100,
		},
	}

	ids := make([]int64, 0, len(hospitals))
	for _, h := range hospitals {
		id, err := store.InsertHospital(ctx, h)
		if err != nil {
			t.Fatalf("Failed to seed hospital %q: %v", h.Name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestQueryCandidatesNoPredicates(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	candidates, capped, err := store.QueryCandidates(context.Background(), model.EntityHospital, nil, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if capped {
		t.Error("Expected cap not hit")
	}
	if len(candidates) != 3 {
		t.Fatalf("Expected all 3 hospitals, got %d", len(candidates))
	}
	if candidates[0].Kind != model.EntityHospital {
		t.Errorf("Expected hospital kind, got %s", candidates[0].Kind)
	}
	if len(candidates[0].Departments) != 2 {
		t.Errorf("Expected 2 departments parsed, got %v", candidates[0].Departments)
	}
}

func TestQueryCandidatesEqualsPredicates(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	predicates := []services.Predicate{
		{Field: services.FieldTierLevel, Operator: services.OpEquals, Value: "grade3A"},
		{Field: services.FieldCityCode, Operator: services.OpEquals, Value: "440300"},
	}

	candidates, _, err := store.QueryCandidates(context.Background(), model.EntityHospital, predicates, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Name != "深圳市人民医院" {
		t.Errorf("Unexpected candidate %q", candidates[0].Name)
	}
}

func TestQueryCandidatesOrGroup(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	// Alias group: either the full or the short cardiology name matches.
	predicates := []services.Predicate{
		{Or: []services.Predicate{
			{Field: services.FieldDepartment, Operator: services.OpContains, Value: "心血管内科"},
			{Field: services.FieldDepartment, Operator: services.OpContains, Value: "心内科"},
		}},
	}

	candidates, _, err := store.QueryCandidates(context.Background(), model.EntityHospital, predicates, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates via alias group, got %d", len(candidates))
	}
}

func TestQueryCandidatesRatingRange(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	predicates := []services.Predicate{
		{Field: services.FieldRating, Operator: services.OpGte, Value: 4.5},
		{Field: services.FieldRating, Operator: services.OpLte, Value: 4.7},
	}

	candidates, _, err := store.QueryCandidates(context.Background(), model.EntityHospital, predicates, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Rating != 4.6 {
		t.Fatalf("Expected only the 4.6-rated hospital, got %v", candidates)
	}
}

func TestQueryCandidatesCapDetection(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	candidates, capped, err := store.QueryCandidates(context.Background(), model.EntityHospital, nil, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !capped {
		t.Error("Expected cap hit with 3 rows and cap 2")
	}
	if len(candidates) != 2 {
		t.Errorf("Expected exactly cap candidates returned, got %d", len(candidates))
	}
}

func TestQueryCandidatesUnknownDimension(t *testing.T) {
	store := setupTestStore(t)

	predicates := []services.Predicate{
		{Field: "consultation_fee", Operator: services.OpLte, Value: 100},
	}

	_, _, err := store.QueryCandidates(context.Background(), model.EntityHospital, predicates, 100)
	if err == nil {
		t.Fatal("Expected an error for a non-filterable dimension")
	}
}

func TestQueryCandidatesLikeEscaping(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertHospital(ctx, model.Hospital{Name: "100%健康门诊", Tier: model.TierOther}); err != nil {
		t.Fatalf("Failed to seed hospital: %v", err)
	}
	if _, err := store.InsertHospital(ctx, model.Hospital{Name: "平安医院", Tier: model.TierOther}); err != nil {
		t.Fatalf("Failed to seed hospital: %v", err)
	}

	predicates := []services.Predicate{
		{Field: services.FieldName, Operator: services.OpContains, Value: "100%"},
	}

	candidates, _, err := store.QueryCandidates(ctx, model.EntityHospital, predicates, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "100%健康门诊" {
		t.Fatalf("Expected the literal-percent name only, got %v", candidates)
	}
}

func TestDoctorCandidatesInheritHospitalAttributes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	ids := seedHospitals(t, store)

	if _, err := store.InsertDoctor(ctx, model.Doctor{
		Name: "张伟", HospitalID: ids[0], Title: "主任医师",
		Specialty: "心血管内科", Rating: 4.9, ReviewCount: 320,
	}); err != nil {
		t.Fatalf("Failed to seed doctor: %v", err)
	}

	predicates := []services.Predicate{
		{Field: services.FieldCityCode, Operator: services.OpEquals, Value: "440300"},
	}

	candidates, _, err := store.QueryCandidates(ctx, model.EntityDoctor, predicates, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 doctor, got %d", len(candidates))
	}

	doc := candidates[0]
	if doc.Kind != model.EntityDoctor {
		t.Errorf("Expected doctor kind, got %s", doc.Kind)
	}
	if doc.Tier != model.Tier3A || doc.CityCode != "440300" || !doc.Insurance {
		t.Errorf("Expected hospital attributes on the doctor candidate, got %+v", doc)
	}
	if len(doc.Departments) != 1 || doc.Departments[0] != "心血管内科" {
		t.Errorf("Expected specialty as department, got %v", doc.Departments)
	}
}

func TestGetHospital(t *testing.T) {
	store := setupTestStore(t)
	ids := seedHospitals(t, store)

	hospital, err := store.GetHospital(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if hospital.Name != "深圳市人民医院" {
		t.Errorf("Unexpected hospital %q", hospital.Name)
	}
	if hospital.Tier != model.Tier3A {
		t.Errorf("Expected tier grade3A, got %s", hospital.Tier)
	}
	if !hospital.Insurance {
		t.Error("Expected insurance flag preserved")
	}
	if hospital.CreatedAt.IsZero() {
		t.Error("Expected created timestamp parsed")
	}
}

func TestGetHospitalNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetHospital(context.Background(), 9999)
	if !errors.Is(err, internalErrors.ErrEntityNotFound) {
		t.Errorf("Expected EntityNotFound error, got %v", err)
	}
}

func TestGetDoctor(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	ids := seedHospitals(t, store)

	docID, err := store.InsertDoctor(ctx, model.Doctor{
		Name: "李娜", HospitalID: ids[1], Title: "副主任医师",
		Specialty: "康复科", ConsultationFee: 50, Rating: 4.5,
	})
	if err != nil {
		t.Fatalf("Failed to seed doctor: %v", err)
	}

	doctor, err := store.GetDoctor(ctx, docID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if doctor.HospitalName != "深圳市中医院" {
		t.Errorf("Expected owning hospital name resolved, got %q", doctor.HospitalName)
	}
	if doctor.ConsultationFee != 50 {
		t.Errorf("Expected consultation fee 50, got %v", doctor.ConsultationFee)
	}
}

func TestGetDoctorNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetDoctor(context.Background(), 12345)
	if !errors.Is(err, internalErrors.ErrEntityNotFound) {
		t.Errorf("Expected EntityNotFound error, got %v", err)
	}
}

func TestSuggestNames(t *testing.T) {
	store := setupTestStore(t)
	seedHospitals(t, store)

	names, err := store.SuggestNames(context.Background(), model.EntityHospital, "深圳", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d: %v", len(names), names)
	}
	// Rating order: 人民医院 (4.6) before 中医院 (4.2).
	if names[0] != "深圳市人民医院" {
		t.Errorf("Expected highest-rated suggestion first, got %q", names[0])
	}
}

func TestSplitDepartments(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
	}{
		{"ascii commas", "骨科,眼科,儿科", 3},
		{"fullwidth punctuation", "骨科，眼科、儿科", 3},
		{"mixed separators with spaces", "骨科, 眼科; 儿科", 3},
		{"empty", "  ", 0},
		{"trailing separator", "骨科,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitDepartments(tt.raw)
			if len(parts) != tt.expected {
				t.Errorf("Expected %d parts for %q, got %v", tt.expected, tt.raw, parts)
			}
		})
	}
}
