package profile

import "strings"

// Recognised dietary restrictions
const (
	RestrictionVegetarian        = "vegetarian"
	RestrictionVegan             = "vegan"
	RestrictionLactoseIntolerant = "lactose intolerant"
)

// Recognised health conditions
const (
	ConditionDiabetes        = "diabetes"
	ConditionHypertension    = "hypertension"
	ConditionHighCholesterol = "high cholesterol"
	ConditionHeartDisease    = "heart disease"
)

// GoalWeightLoss is the goal phrase the eligibility rules look for
const GoalWeightLoss = "weight loss"

// Health is the read-only view of a user that eligibility rules evaluate
// against. The zero value is a valid profile with no restrictions.
type Health struct {
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	HealthConditions    []string `json:"healthConditions"`
	Goals               string   `json:"goals"`
	DailyCalorieLimit   *float64 `json:"dailyCalorieLimit,omitempty"`
}

// NewHealth normalises raw values into a Health profile. Values are
// lower-cased and trimmed, blanks and "none" are dropped, duplicates are
// removed, and a non-positive calorie limit is treated as absent.
func NewHealth(restrictions, conditions []string, goals string, dailyCalorieLimit float64) Health {
	h := Health{
		DietaryRestrictions: normalizeSet(restrictions),
		HealthConditions:    normalizeSet(conditions),
		Goals:               strings.ToLower(strings.TrimSpace(goals)),
	}
	if dailyCalorieLimit > 0 {
		limit := dailyCalorieLimit
		h.DailyCalorieLimit = &limit
	}
	return h
}

// HasRestriction reports whether the profile carries the given restriction
func (h Health) HasRestriction(restriction string) bool {
	return containsFold(h.DietaryRestrictions, restriction)
}

// HasCondition reports whether the profile carries the given condition
func (h Health) HasCondition(condition string) bool {
	return containsFold(h.HealthConditions, condition)
}

// HasGoal reports whether the free-text goals mention the phrase
func (h Health) HasGoal(phrase string) bool {
	return strings.Contains(strings.ToLower(h.Goals), strings.ToLower(phrase))
}

// CalorieLimit returns the daily calorie limit when one is set
func (h Health) CalorieLimit() (float64, bool) {
	if h.DailyCalorieLimit == nil || *h.DailyCalorieLimit <= 0 {
		return 0, false
	}
	return *h.DailyCalorieLimit, true
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		n := strings.ToLower(strings.TrimSpace(v))
		if n == "" || n == "none" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
