// Package scoring computes the 0-100 match score of a candidate against a
// criteria using a fixed weighted rubric. Score is a pure function: no I/O,
// no side effects, deterministic for the same inputs.
package scoring

import (
	"math"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/config"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/department"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/model"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// Engine scores candidates with a fixed set of rubric weights. The weights
// are handed in at construction; the engine holds no other state.
type Engine struct {
	weights config.Weights
}

// NewEngine creates a scoring engine with the given rubric weights.
func NewEngine(weights config.Weights) *Engine {
	return &Engine{weights: weights}
}

// Score evaluates a candidate against the criteria and returns the breakdown.
//
// The denominator of the final 0-100 score is the sum of weights for the
// dimensions the caller actually requested. Tier, department and insurance
// are only in the denominator when requested; geography and rating are always
// scored. Candidates are therefore never penalized for dimensions the caller
// never asked about.
func (e *Engine) Score(candidate model.Candidate, criteria services.Criteria) model.ScoreBreakdown {
	contributions := make(map[string]float64, 5)
	var applicable float64

	if criteria.TierLevel != nil {
		applicable += e.weights.Tier
		contributions[model.DimensionTier] = e.tierContribution(candidate.Tier, *criteria.TierLevel)
	}

	applicable += e.weights.Geography
	contributions[model.DimensionGeography] = e.geographyContribution(candidate, criteria)

	if criteria.DepartmentName != nil {
		applicable += e.weights.Department
		contributions[model.DimensionDepartment] = e.departmentContribution(candidate.Departments, *criteria.DepartmentName)
	}

	if criteria.InsuranceRequired != nil {
		applicable += e.weights.Insurance
		if candidate.Insurance == *criteria.InsuranceRequired {
			contributions[model.DimensionInsurance] = e.weights.Insurance
		} else {
			contributions[model.DimensionInsurance] = 0
		}
	}

	applicable += e.weights.Rating
	contributions[model.DimensionRating] = e.ratingContribution(candidate.Rating)

	var sum float64
	for _, c := range contributions {
		sum += c
	}

	total := 0
	if applicable > 0 {
		total = int(math.Round(100 * sum / applicable))
	}

	return model.ScoreBreakdown{
		Total:         total,
		Contributions: contributions,
		Applicable:    applicable,
	}
}

// tierContribution awards full weight for an exact tier match and half weight
// for a candidate exactly one tier below the requested one.
func (e *Engine) tierContribution(candidate, requested model.TierLevel) float64 {
	switch candidate.Rank() - requested.Rank() {
	case 0:
		return e.weights.Tier
	case 1:
		return e.weights.Tier / 2
	}
	return 0
}

// geographyContribution awards full weight when the most specific requested
// level matches, 75% for a city match under a missed area, 50% for a
// province-only match, and 0 otherwise. With no geography requested the
// dimension is vacuously satisfied at full weight.
func (e *Engine) geographyContribution(candidate model.Candidate, criteria services.Criteria) float64 {
	if criteria.AreaCode == nil && criteria.CityCode == nil && criteria.ProvinceCode == nil {
		return e.weights.Geography
	}

	areaMatch := criteria.AreaCode != nil && candidate.AreaCode == *criteria.AreaCode
	cityMatch := criteria.CityCode != nil && candidate.CityCode == *criteria.CityCode
	provinceMatch := criteria.ProvinceCode != nil && candidate.ProvinceCode == *criteria.ProvinceCode

	switch {
	case criteria.AreaCode != nil && areaMatch:
		return e.weights.Geography
	case criteria.AreaCode == nil && criteria.CityCode != nil && cityMatch:
		return e.weights.Geography
	case criteria.AreaCode == nil && criteria.CityCode == nil && provinceMatch:
		return e.weights.Geography
	case cityMatch:
		return e.weights.Geography * 0.75
	case provinceMatch:
		return e.weights.Geography * 0.5
	}
	return 0
}

// departmentContribution awards full weight for an exact name match and half
// weight for an alias or substring match.
func (e *Engine) departmentContribution(candidates []string, requested string) float64 {
	switch department.Match(requested, candidates) {
	case department.MatchExact:
		return e.weights.Department
	case department.MatchPartial:
		return e.weights.Department / 2
	}
	return 0
}

// ratingContribution awards banded weight by candidate rating. The dimension
// is always applicable: even an unrated, low-scoring candidate contributes
// the floor band.
func (e *Engine) ratingContribution(rating float64) float64 {
	switch {
	case rating >= 4.5:
		return e.weights.Rating
	case rating >= 4.0:
		return e.weights.Rating * 0.8
	case rating >= 3.5:
		return e.weights.Rating * 0.5
	}
	return e.weights.Rating * 0.3
}
