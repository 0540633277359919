// Package eligibility decides whether a catalog food suits a user's health
// profile and proposes substitutes when it does not.
package eligibility

import (
	"fmt"
	"strconv"

	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/domain/profile"
)

// Thresholds, all compared with a strict greater-than
const (
	HighSugarGrams       = 15.0
	ModerateSugarGrams   = 10.0
	CholesterolFatGrams  = 20.0
	HeartFatGrams        = 15.0
	WeightLossCalories   = 300.0
	DailyLimitShareAlarm = 0.3
)

// vegetarianExcluded names the animal foods a vegetarian restriction denies
var vegetarianExcluded = map[string]struct{}{
	"chicken": {},
	"fish":    {},
	"egg":     {},
}

// rule inspects one food against one profile and records its outcome on v
type rule func(f food.Entry, h profile.Health, v *Verdict)

// Evaluator applies every dietary rule in a fixed order. It holds no state.
type Evaluator struct {
	rules []rule
}

// NewEvaluator returns an evaluator with the standard rule set
func NewEvaluator() *Evaluator {
	return &Evaluator{
		rules: []rule{
			vegetarianRule,
			veganRule,
			lactoseRule,
			diabetesSugarRule,
			diabetesDessertRule,
			hypertensionRule,
			cholesterolRule,
			heartDiseaseRule,
			weightLossRule,
			dailyLimitRule,
		},
	}
}

// Evaluate runs all rules; none short-circuits, so issues and warnings accumulate.
func (e *Evaluator) Evaluate(f food.Entry, h profile.Health) Verdict {
	v := newVerdict()
	for _, r := range e.rules {
		r(f, h, &v)
	}
	return v
}

func vegetarianRule(f food.Entry, h profile.Health, v *Verdict) {
	if !h.HasRestriction(profile.RestrictionVegetarian) {
		return
	}
	if _, animal := vegetarianExcluded[f.Name]; animal && f.Category.In(food.CategoryLeanProtein, food.CategoryProtein) {
		v.deny("Not suitable for vegetarian diet")
	}
}

func veganRule(f food.Entry, h profile.Health, v *Verdict) {
	if h.HasRestriction(profile.RestrictionVegan) &&
		f.Category.In(food.CategoryDairy, food.CategoryDairyProtein, food.CategoryProtein) {
		v.deny("Not suitable for vegan diet")
	}
}

func lactoseRule(f food.Entry, h profile.Health, v *Verdict) {
	if h.HasRestriction(profile.RestrictionLactoseIntolerant) && f.Category == food.CategoryDairy {
		v.deny("Contains lactose - not suitable for lactose intolerance")
	}
}

func diabetesSugarRule(f food.Entry, h profile.Health, v *Verdict) {
	if !h.HasCondition(profile.ConditionDiabetes) {
		return
	}
	switch sugar := f.SugarContent(); {
	case sugar > HighSugarGrams:
		v.deny("High sugar content - not recommended for diabetes")
	case sugar > ModerateSugarGrams:
		v.warn("Moderate sugar content - consume in limited quantities")
	}
}

func diabetesDessertRule(f food.Entry, h profile.Health, v *Verdict) {
	if h.HasCondition(profile.ConditionDiabetes) && f.Category == food.CategoryDessert {
		v.deny("Desserts should be avoided with diabetes")
	}
}

func hypertensionRule(f food.Entry, h profile.Health, v *Verdict) {
	if h.HasCondition(profile.ConditionHypertension) && f.Category == food.CategoryFriedSnack {
		v.warn("Fried foods may increase blood pressure - consume moderately")
	}
}

func cholesterolRule(f food.Entry, h profile.Health, v *Verdict) {
	if !h.HasCondition(profile.ConditionHighCholesterol) {
		return
	}
	if f.Fat > CholesterolFatGrams {
		v.warn("High fat content - monitor your portion size")
	}
	if f.Category == food.CategoryFriedSnack {
		v.deny("Fried foods not recommended for high cholesterol")
	}
}

func heartDiseaseRule(f food.Entry, h profile.Health, v *Verdict) {
	if h.HasCondition(profile.ConditionHeartDisease) && (f.Fat > HeartFatGrams || f.Category == food.CategoryFriedSnack) {
		v.deny("High fat content not suitable for heart disease")
	}
}

func weightLossRule(f food.Entry, h profile.Health, v *Verdict) {
	if !h.HasGoal(profile.GoalWeightLoss) {
		return
	}
	if f.Calories > WeightLossCalories {
		v.warn("High calorie food - limit portion size for weight loss")
	}
	if f.Category.In(food.CategoryDessert, food.CategoryFriedSnack) {
		v.deny("Not recommended for weight loss goals")
	}
}

func dailyLimitRule(f food.Entry, h profile.Health, v *Verdict) {
	limit, ok := h.CalorieLimit()
	if !ok || f.Calories <= limit*DailyLimitShareAlarm {
		return
	}
	v.warn(fmt.Sprintf("High calorie (%s cal) - this is more than 30%% of your daily limit", FormatAmount(f.Calories)))
}

// FormatAmount renders a nutrient amount without trailing zeros (71, 2.8)
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
