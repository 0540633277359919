// Package profile defines the stored health profile of a user and the
// Health view the eligibility rules consume.
package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender as captured on the profile form
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// DietPreference as captured on the profile form
type DietPreference string

const (
	DietVegetarian    DietPreference = "Vegetarian"
	DietNonVegetarian DietPreference = "Non-Vegetarian"
	DietVegan         DietPreference = "Vegan"
)

// ActivityLevel as captured on the profile form
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Light"
	ActivityModerate   ActivityLevel = "Moderate"
	ActivityActive     ActivityLevel = "Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

// Nutrition holds the daily targets computed for the user
type Nutrition struct {
	BMR           float64 `json:"BMR"`
	TDEE          float64 `json:"TDEE"`
	EnergyKcal    float64 `json:"energy_kcal"`
	ProteinG      float64 `json:"protein_g"`
	CarbG         float64 `json:"carb_g"`
	FatG          float64 `json:"fat_g"`
	FiberG        float64 `json:"fiber_g"`
	FreeSugarG    float64 `json:"free_sugar_g"`
	CholesterolMg float64 `json:"cholesterol_mg"`
}

// Profile is the health form a user fills in before chatting
type Profile struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"userId"`
	Name           string         `json:"name"`
	DateOfBirth    time.Time      `json:"dob"`
	Gender         Gender         `json:"gender"`
	WeightKg       float64        `json:"weight"`
	HeightCm       float64        `json:"height"`
	Conditions     []string       `json:"conditions"`
	DietPreference DietPreference `json:"dietPreference"`
	Allergies      string         `json:"allergies"`
	ActivityLevel  ActivityLevel  `json:"activityLevel"`
	Goals          string         `json:"goals"`
	Nutrition      *Nutrition     `json:"nutrition,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// lactoseMarkers are allergy keywords that imply lactose intolerance
var lactoseMarkers = []string{"lactose", "dairy", "milk"}

// conditionHyperlipidemia is the form's name for high cholesterol
const conditionHyperlipidemia = "hyperlipidemia"

func mentionsLactose(allergies string) bool {
	allergies = strings.ToLower(allergies)
	for _, marker := range lactoseMarkers {
		if strings.Contains(allergies, marker) {
			return true
		}
	}
	return false
}

// ApplyDefaults fills optional fields the same way the profile form does
func (p *Profile) ApplyDefaults() {
	if p.DietPreference == "" {
		p.DietPreference = DietVegetarian
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = ActivityModerate
	}
	if len(p.Conditions) == 0 {
		p.Conditions = []string{"None"}
	}
}

// Validate checks the required fields and enumerations
func (p *Profile) Validate(now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.DateOfBirth.IsZero() || !p.DateOfBirth.Before(now) {
		return ErrInvalidDateOfBirth
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return ErrInvalidGender
	}
	if p.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if p.HeightCm <= 0 {
		return ErrInvalidHeight
	}
	switch p.DietPreference {
	case DietVegetarian, DietNonVegetarian, DietVegan:
	default:
		return ErrInvalidDietPreference
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
	default:
		return ErrInvalidActivityLevel
	}
	return nil
}

// Age returns the user's age in whole years at the given instant
func (p *Profile) Age(now time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	years := now.Year() - p.DateOfBirth.Year()
	dob := p.DateOfBirth
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Health maps the stored form onto the eligibility view. A vegan diet also
// carries the vegetarian restriction. Lactose intolerance may come from the
// allergies text or from the form's "Lactose Intolerance" condition, and the
// form's "Hyperlipidemia" is read as high cholesterol.
func (p *Profile) Health() Health {
	var restrictions []string
	switch p.DietPreference {
	case DietVegetarian:
		restrictions = append(restrictions, RestrictionVegetarian)
	case DietVegan:
		restrictions = append(restrictions, RestrictionVegan, RestrictionVegetarian)
	}

	if mentionsLactose(p.Allergies) {
		restrictions = append(restrictions, RestrictionLactoseIntolerant)
	}

	conditions := make([]string, 0, len(p.Conditions))
	for _, c := range p.Conditions {
		normalized := strings.ToLower(strings.TrimSpace(c))
		switch {
		case strings.Contains(normalized, "lactose"):
			restrictions = append(restrictions, RestrictionLactoseIntolerant)
		case normalized == conditionHyperlipidemia:
			conditions = append(conditions, ConditionHighCholesterol)
		default:
			conditions = append(conditions, c)
		}
	}

	var limit float64
	if p.Nutrition != nil {
		limit = p.Nutrition.EnergyKcal
		if limit <= 0 {
			limit = p.Nutrition.TDEE
		}
	}

	return NewHealth(restrictions, conditions, p.Goals, limit)
}
