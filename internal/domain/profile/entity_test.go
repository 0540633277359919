package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProfileTestSuite struct {
	suite.Suite
	now time.Time
}

func (s *ProfileTestSuite) SetupTest() {
	s.now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func (s *ProfileTestSuite) validProfile() *Profile {
	return &Profile{
		UserID:         uuid.New(),
		Name:           "Asha",
		DateOfBirth:    time.Date(1990, time.August, 20, 0, 0, 0, 0, time.UTC),
		Gender:         GenderFemale,
		WeightKg:       62,
		HeightCm:       160,
		DietPreference: DietNonVegetarian,
		ActivityLevel:  ActivityLight,
	}
}

func (s *ProfileTestSuite) TestValidate() {
	s.Run("ValidProfile_ShouldPass", func() {
		s.NoError(s.validProfile().Validate(s.now))
	})

	s.Run("MissingName_ShouldFail", func() {
		p := s.validProfile()
		p.Name = "  "
		s.ErrorIs(p.Validate(s.now), ErrNameRequired)
	})

	s.Run("FutureDOB_ShouldFail", func() {
		p := s.validProfile()
		p.DateOfBirth = s.now.Add(24 * time.Hour)
		s.ErrorIs(p.Validate(s.now), ErrInvalidDateOfBirth)
	})

	s.Run("UnknownGender_ShouldFail", func() {
		p := s.validProfile()
		p.Gender = "robot"
		s.ErrorIs(p.Validate(s.now), ErrInvalidGender)
	})

	s.Run("ZeroWeight_ShouldFail", func() {
		p := s.validProfile()
		p.WeightKg = 0
		s.ErrorIs(p.Validate(s.now), ErrInvalidWeight)
	})

	s.Run("UnknownDiet_ShouldFail", func() {
		p := s.validProfile()
		p.DietPreference = "Keto"
		s.ErrorIs(p.Validate(s.now), ErrInvalidDietPreference)
	})
}

func (s *ProfileTestSuite) TestApplyDefaults() {
	p := &Profile{}
	p.ApplyDefaults()

	s.Equal(DietVegetarian, p.DietPreference)
	s.Equal(ActivityModerate, p.ActivityLevel)
	s.Equal([]string{"None"}, p.Conditions)
}

func (s *ProfileTestSuite) TestAge() {
	p := s.validProfile()
	s.Equal(34, p.Age(s.now))

	p.DateOfBirth = time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	s.Equal(35, p.Age(s.now))

	s.Equal(0, (&Profile{}).Age(s.now))
}

func (s *ProfileTestSuite) TestHealth() {
	s.Run("VegetarianWithConditions", func() {
		p := s.validProfile()
		p.DietPreference = DietVegetarian
		p.Conditions = []string{" Diabetes", "None", "hypertension", "diabetes"}
		p.Goals = "Weight Loss and better sleep"

		h := p.Health()

		s.Equal([]string{RestrictionVegetarian}, h.DietaryRestrictions)
		s.Equal([]string{ConditionDiabetes, ConditionHypertension}, h.HealthConditions)
		s.True(h.HasGoal(GoalWeightLoss))
		_, ok := h.CalorieLimit()
		s.False(ok)
	})

	s.Run("VeganWithLactoseAllergy", func() {
		p := s.validProfile()
		p.DietPreference = DietVegan
		p.Allergies = "Milk, peanuts"

		h := p.Health()

		s.True(h.HasRestriction(RestrictionVegan))
		s.True(h.HasRestriction(RestrictionLactoseIntolerant))
		s.True(h.HasRestriction(RestrictionVegetarian))
	})

	s.Run("FormConditions_LactoseIntoleranceBecomesRestriction", func() {
		p := s.validProfile()
		p.DietPreference = DietNonVegetarian
		p.Conditions = []string{"Lactose Intolerance", "Diabetes"}

		h := p.Health()

		s.Equal([]string{RestrictionLactoseIntolerant}, h.DietaryRestrictions)
		s.Equal([]string{ConditionDiabetes}, h.HealthConditions)
	})

	s.Run("FormConditions_HyperlipidemiaIsHighCholesterol", func() {
		p := s.validProfile()
		p.DietPreference = DietNonVegetarian
		p.Conditions = []string{" Hyperlipidemia ", "High Cholesterol"}

		h := p.Health()

		s.Empty(h.DietaryRestrictions)
		s.Equal([]string{ConditionHighCholesterol}, h.HealthConditions)
	})

	s.Run("CalorieLimitFromNutrition", func() {
		p := s.validProfile()
		p.Nutrition = &Nutrition{TDEE: 2100}
		limit, ok := p.Health().CalorieLimit()
		s.True(ok)
		s.Equal(2100.0, limit)

		p.Nutrition.EnergyKcal = 1800
		limit, _ = p.Health().CalorieLimit()
		s.Equal(1800.0, limit)
	})
}

func TestProfileTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileTestSuite))
}

func TestHealth_ZeroValueIsSafe(t *testing.T) {
	var h Health

	assert.False(t, h.HasRestriction(RestrictionVegan))
	assert.False(t, h.HasCondition(ConditionDiabetes))
	assert.False(t, h.HasGoal(GoalWeightLoss))
	_, ok := h.CalorieLimit()
	assert.False(t, ok)
}

func TestNewHealth_NonPositiveLimitIsAbsent(t *testing.T) {
	h := NewHealth(nil, nil, "", -5)
	assert.Nil(t, h.DailyCalorieLimit)
	assert.NotNil(t, h.DietaryRestrictions)
}

func TestNewPrediction(t *testing.T) {
	userID := uuid.New()

	p, err := NewPrediction(userID, []byte(` [{"food":"dal"}] `))
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.JSONEq(t, `[{"food":"dal"}]`, string(p.Meals))

	_, err = NewPrediction(userID, []byte(`"just a string"`))
	assert.ErrorIs(t, err, ErrInvalidMeals)

	_, err = NewPrediction(userID, []byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidMeals)

	_, err = NewPrediction(userID, nil)
	assert.ErrorIs(t, err, ErrInvalidMeals)
}
