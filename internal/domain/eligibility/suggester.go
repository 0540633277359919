package eligibility

import (
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/domain/profile"
)

// GrainCalorieCeiling is the calorie count above which a refined grain gets
// whole-grain substitutes.
const GrainCalorieCeiling = 100.0

// Suggester proposes substitutes for a denied food
type Suggester struct {
	resolver  *food.Resolver
	evaluator *Evaluator
}

// NewSuggester creates a suggester over the given resolver and evaluator
func NewSuggester(resolver *food.Resolver, evaluator *Evaluator) *Suggester {
	return &Suggester{resolver: resolver, evaluator: evaluator}
}

// Candidates returns the unfiltered substitute list for a food
func Candidates(f food.Entry) []string {
	switch f.Category {
	case food.CategoryDessert:
		return []string{"fresh fruit", "yogurt with honey", "dates"}
	case food.CategoryFriedSnack:
		return []string{"roasted chickpeas", "baked chips", "nuts"}
	case food.CategoryGrain:
		if f.Calories > GrainCalorieCeiling {
			return []string{"brown rice", "oats", "whole wheat roti"}
		}
		return nil
	case food.CategoryVegetable, food.CategoryStarchyVegetable, food.CategoryLeafyGreen,
		food.CategoryFruit, food.CategoryWholeGrain, food.CategoryLeanProtein,
		food.CategoryProtein, food.CategoryDairyProtein, food.CategoryPlantProtein,
		food.CategoryLegume, food.CategoryDairy, food.CategoryBeverage, food.CategoryNut:
		return nil
	default:
		return nil
	}
}

// SuggestAlternatives returns the substitutes that are themselves eligible
// for the profile. A candidate the catalog cannot resolve is kept as is.
func (s *Suggester) SuggestAlternatives(f food.Entry, h profile.Health) []string {
	candidates := Candidates(f)
	out := make([]string, 0, len(candidates))
	for _, alt := range candidates {
		entry, ok := s.resolver.FindFood(alt)
		if !ok || s.evaluator.Evaluate(entry, h).IsAllowed {
			out = append(out, alt)
		}
	}
	return out
}
