package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/domain/profile"
)

type SuggesterTestSuite struct {
	suite.Suite
	catalog   *food.Catalog
	suggester *Suggester
}

func (s *SuggesterTestSuite) SetupTest() {
	s.catalog = food.DefaultCatalog()
	s.suggester = NewSuggester(food.NewResolver(s.catalog), NewEvaluator())
}

func (s *SuggesterTestSuite) food(name string) food.Entry {
	e, ok := s.catalog.Lookup(name)
	s.Require().True(ok, name)
	return e
}

func (s *SuggesterTestSuite) TestSuggestAlternatives() {
	s.Run("Dessert_UnresolvedCandidatesPassThrough", func() {
		alts := s.suggester.SuggestAlternatives(s.food("jalebi"), profile.Health{HealthConditions: []string{"diabetes"}})
		s.Equal([]string{"fresh fruit", "yogurt with honey", "dates"}, alts)
	})

	s.Run("Dessert_LactoseIntolerant_ShouldDropYogurt", func() {
		alts := s.suggester.SuggestAlternatives(s.food("pudding"), profile.Health{DietaryRestrictions: []string{"lactose intolerant"}})
		s.Equal([]string{"fresh fruit", "dates"}, alts)
	})

	s.Run("FriedSnack_HighCholesterol_ShouldDropBakedChips", func() {
		alts := s.suggester.SuggestAlternatives(s.food("samosa"), profile.Health{HealthConditions: []string{"high cholesterol"}})
		s.Equal([]string{"roasted chickpeas", "nuts"}, alts)
	})

	s.Run("FriedSnack_HeartDisease_ShouldDropNuts", func() {
		alts := s.suggester.SuggestAlternatives(s.food("pakora"), profile.Health{HealthConditions: []string{"heart disease"}})
		s.Equal([]string{"roasted chickpeas"}, alts)
	})

	s.Run("CaloricGrain_ShouldSuggestWholeGrains", func() {
		alts := s.suggester.SuggestAlternatives(s.food("rice"), profile.Health{Goals: "weight loss"})
		s.Equal([]string{"brown rice", "oats", "whole wheat roti"}, alts)
	})

	s.Run("LightGrain_ShouldSuggestNothing", func() {
		s.Empty(s.suggester.SuggestAlternatives(s.food("roti"), profile.Health{}))
	})

	s.Run("OtherCategory_ShouldSuggestNothing", func() {
		s.Empty(s.suggester.SuggestAlternatives(s.food("milk"), profile.Health{}))
	})
}

func TestSuggesterTestSuite(t *testing.T) {
	suite.Run(t, new(SuggesterTestSuite))
}

func TestSuggestAlternatives_FiltersIneligibleSubstitute(t *testing.T) {
	sweet := 20.0
	jalebiSugar := 22.0
	catalog := food.MustNewCatalog([]food.Entry{
		{Name: "jalebi", Calories: 150, Category: food.CategoryDessert, Sugar: &jalebiSugar},
		{Name: "fresh fruit", Calories: 60, Category: food.CategoryFruit, Sugar: &sweet},
		{Name: "yogurt", Calories: 59, Category: food.CategoryDairy},
	})
	suggester := NewSuggester(food.NewResolver(catalog), NewEvaluator())
	jalebi, _ := catalog.Lookup("jalebi")

	alts := suggester.SuggestAlternatives(jalebi, profile.Health{HealthConditions: []string{"diabetes"}})

	assert.Equal(t, []string{"yogurt with honey", "dates"}, alts)
}

func TestCandidates_EveryCategoryIsHandled(t *testing.T) {
	for _, c := range food.Categories() {
		assert.NotPanics(t, func() {
			Candidates(food.Entry{Name: "x", Category: c, Calories: 500})
		})
	}
}
