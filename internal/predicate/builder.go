// Package predicate turns a Criteria value into the minimal list of filter
// predicates for the catalog store. It is a pure data transformation with no
// knowledge of any specific storage engine.
package predicate

import (
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/department"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// Build returns the ordered list of active predicates for the given criteria.
// Absent criteria fields produce no predicate at all; the builder never emits
// an equals-wildcard or equals-empty-string condition. A criteria with every
// optional field absent yields an empty list, which matches everything.
func Build(criteria services.Criteria) []services.Predicate {
	var predicates []services.Predicate

	if criteria.TierLevel != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldTierLevel,
			Operator: services.OpEquals,
			Value:    string(*criteria.TierLevel),
		})
	}

	// Geography predicates are emitted for every present code. The store is
	// not assumed to index area -> city -> province, so an area predicate does
	// not make the city/province ones redundant.
	if criteria.ProvinceCode != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldProvinceCode,
			Operator: services.OpEquals,
			Value:    *criteria.ProvinceCode,
		})
	}
	if criteria.CityCode != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldCityCode,
			Operator: services.OpEquals,
			Value:    *criteria.CityCode,
		})
	}
	if criteria.AreaCode != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldAreaCode,
			Operator: services.OpEquals,
			Value:    *criteria.AreaCode,
		})
	}

	if criteria.InsuranceRequired != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldInsurance,
			Operator: services.OpEquals,
			Value:    *criteria.InsuranceRequired,
		})
	}

	if criteria.DepartmentName != nil {
		predicates = append(predicates, departmentGroup(*criteria.DepartmentName))
	}

	if criteria.KeywordText != nil {
		predicates = append(predicates, keywordGroup(*criteria.KeywordText))
	}

	if criteria.RatingFloor != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldRating,
			Operator: services.OpGte,
			Value:    *criteria.RatingFloor,
		})
	}
	if criteria.RatingCeiling != nil {
		predicates = append(predicates, services.Predicate{
			Field:    services.FieldRating,
			Operator: services.OpLte,
			Value:    *criteria.RatingCeiling,
		})
	}

	return predicates
}

// departmentGroup expands a department name into an OR-group of contains
// predicates, one per known alias, so that catalogs storing either the short
// or the full department name both match.
func departmentGroup(name string) services.Predicate {
	aliases := department.Aliases(name)
	group := make([]services.Predicate, 0, len(aliases))
	for _, alias := range aliases {
		group = append(group, services.Predicate{
			Field:    services.FieldDepartment,
			Operator: services.OpContains,
			Value:    alias,
		})
	}
	return services.Predicate{Or: group}
}

// keywordGroup expands keyword text into an OR-group over the name and
// department/specialty fields, not a single exact match.
func keywordGroup(keyword string) services.Predicate {
	return services.Predicate{Or: []services.Predicate{
		{Field: services.FieldName, Operator: services.OpContains, Value: keyword},
		{Field: services.FieldDepartment, Operator: services.OpContains, Value: keyword},
	}}
}
