package chat

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nutrimate/v1/internal/domain/eligibility"
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/domain/profile"
)

type ComposerTestSuite struct {
	suite.Suite
	composer *Composer
	diabetic profile.Health
}

func (s *ComposerTestSuite) SetupTest() {
	resolver := food.NewResolver(food.DefaultCatalog())
	evaluator := eligibility.NewEvaluator()
	s.composer = NewComposer(resolver, evaluator, eligibility.NewSuggester(resolver, evaluator))
	s.diabetic = profile.Health{HealthConditions: []string{"diabetes"}}
}

func (s *ComposerTestSuite) TestNoFood() {
	result := s.composer.HandleQuery("hello there", profile.Health{})

	s.Nil(result.IsAllowed)
	s.Empty(result.FoodItems)
	s.Contains(result.Response, "I couldn't identify any specific food in your query.")
	s.Contains(result.Response, "'Can I eat carrot?' or 'I want pudding'")
}

func (s *ComposerTestSuite) TestUnknownSingleName() {
	result := s.composer.Compose([]string{"pizza"}, profile.Health{})

	s.Nil(result.IsAllowed)
	s.Equal(`I don't have information about "pizza" in my database yet. Please try another food item or consult your nutritionist.`, result.Response)
}

func (s *ComposerTestSuite) TestAllowedSingle() {
	s.Run("PlainVegetable", func() {
		result := s.composer.HandleQuery("Can I eat carrot?", profile.Health{})

		s.Require().NotNil(result.IsAllowed)
		s.True(*result.IsAllowed)
		s.Equal([]string{"carrot"}, result.FoodItems)
		s.Equal("✅ Yes, you can eat carrot! It contains 41 calories. Good for: eye health, immunity. ", result.Response)
	})

	s.Run("NutWithProteinFiberAndTip", func() {
		result := s.composer.HandleQuery("almonds?", profile.Health{})

		s.Equal("✅ Yes, you can eat almonds! It contains 579 calories, 21g protein, 12.5g fiber. "+
			"Good for: heart health, vitamin E. \n\n💡 Tip: A handful (20-30g) makes a great snack.", result.Response)
	})

	s.Run("SweetFruitWithWarning", func() {
		result := s.composer.HandleQuery("is mango fine", s.diabetic)

		s.True(*result.IsAllowed)
		s.Equal("✅ Yes, you can eat mango! It contains 60 calories. Good for: vitamin C, immunity. "+
			"\n\n⚠️ Note: Moderate sugar content - consume in limited quantities"+
			"\n\n💡 Tip: Best consumed in morning or pre-workout.", result.Response)
	})

	s.Run("DessertTip", func() {
		result := s.composer.HandleQuery("I want pudding", profile.Health{})

		s.Equal("✅ Yes, you can eat pudding! It contains 158 calories. "+
			"\n\n💡 Tip: Enjoy in moderation as an occasional treat.", result.Response)
	})
}

func (s *ComposerTestSuite) TestDeniedSingle() {
	s.Run("WithAlternatives", func() {
		result := s.composer.HandleQuery("can i have jalebi", s.diabetic)

		s.Require().NotNil(result.IsAllowed)
		s.False(*result.IsAllowed)
		s.Equal("❌ Sorry, jalebi is not recommended for you. "+
			"High sugar content - not recommended for diabetes Desserts should be avoided with diabetes. "+
			"\n\n💡 Try these alternatives: fresh fruit, yogurt with honey, dates.", result.Response)
	})

	s.Run("WithoutAlternatives", func() {
		result := s.composer.HandleQuery("milk", profile.Health{DietaryRestrictions: []string{"lactose intolerant"}})

		s.False(*result.IsAllowed)
		s.Equal("❌ Sorry, milk is not recommended for you. Contains lactose - not suitable for lactose intolerance. ", result.Response)
	})
}

func (s *ComposerTestSuite) TestMultipleFoods() {
	s.Run("OneDeniedFood_ShouldDenyWholeMeal", func() {
		result := s.composer.HandleQuery("Can I eat carrot and jalebi?", s.diabetic)

		s.Require().NotNil(result.IsAllowed)
		s.False(*result.IsAllowed)
		s.Equal([]string{"carrot", "jalebi"}, result.FoodItems)
		s.Contains(result.Response, "✅ **carrot**")
		s.Contains(result.Response, "❌ **jalebi**")
		s.Equal("I found multiple foods in your query: carrot, jalebi.\n\n"+
			"✅ **carrot**: Allowed (41 cal)\n"+
			"❌ **jalebi**: Not recommended - High sugar content - not recommended for diabetes\n", result.Response)
	})

	s.Run("AllAllowed", func() {
		result := s.composer.HandleQuery("dal with roti", profile.Health{})

		s.True(*result.IsAllowed)
		s.Equal([]string{"roti", "dal"}, result.FoodItems)
	})

	s.Run("UnknownNamesAreSkipped", func() {
		result := s.composer.Compose([]string{"carrot", "pizza"}, profile.Health{})

		s.True(*result.IsAllowed)
		s.Equal([]string{"carrot", "pizza"}, result.FoodItems)
		s.NotContains(result.Response, "**pizza**")
	})
}

func (s *ComposerTestSuite) TestStoredProfileAnswers() {
	deny := func(p *profile.Profile, query, food string) {
		result := s.composer.HandleQuery(query, p.Health())

		s.Require().NotNil(result.IsAllowed, query)
		s.False(*result.IsAllowed, query)
		s.Equal([]string{food}, result.FoodItems)
		s.Contains(result.Response, "❌ Sorry, "+food+" is not recommended for you.")
	}

	s.Run("Vegan_ShouldDenyChickenAndFish", func() {
		vegan := &profile.Profile{DietPreference: profile.DietVegan}
		deny(vegan, "Can I eat chicken?", "chicken")
		deny(vegan, "is fish ok?", "fish")
	})

	s.Run("LactoseIntoleranceCondition_ShouldDenyMilk", func() {
		deny(&profile.Profile{
			DietPreference: profile.DietNonVegetarian,
			Conditions:     []string{"Lactose Intolerance"},
		}, "Can I drink milk?", "milk")
	})

	s.Run("Hyperlipidemia_ShouldDenyFriedSnack", func() {
		deny(&profile.Profile{
			DietPreference: profile.DietNonVegetarian,
			Conditions:     []string{"Hyperlipidemia"},
		}, "Can I eat samosa?", "samosa")
	})
}

func TestComposerTestSuite(t *testing.T) {
	suite.Run(t, new(ComposerTestSuite))
}
