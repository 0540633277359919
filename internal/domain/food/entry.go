package food

import (
	"fmt"
	"strings"
)

// Entry holds the nutritional profile of one catalog food, per 100g serving.
type Entry struct {
	Name           string   `json:"name"`
	Calories       float64  `json:"calories"`
	Protein        float64  `json:"protein"`
	Carbs          float64  `json:"carbs"`
	Fat            float64  `json:"fat"`
	Fiber          float64  `json:"fiber"`
	Sugar          *float64 `json:"sugar,omitempty"`
	Category       Category `json:"category"`
	HealthBenefits []string `json:"healthBenefits"`
}

// SugarContent returns the sugar grams, treating an unknown value as zero.
func (e Entry) SugarContent() float64 {
	if e.Sugar == nil {
		return 0
	}
	return *e.Sugar
}

// Validate checks the catalog invariants for a single entry
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if e.Name != strings.ToLower(strings.TrimSpace(e.Name)) {
		return fmt.Errorf("%w: name %q must be lowercase and trimmed", ErrInvalidEntry, e.Name)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q has %v", ErrInvalidEntry, e.Name, ErrUnknownCategory)
	}
	macros := []float64{e.Calories, e.Protein, e.Carbs, e.Fat, e.Fiber, e.SugarContent()}
	for _, v := range macros {
		if v < 0 {
			return fmt.Errorf("%w: %q has a negative nutrient value", ErrInvalidEntry, e.Name)
		}
	}
	return nil
}

func (e Entry) clone() Entry {
	out := e
	if e.Sugar != nil {
		sugar := *e.Sugar
		out.Sugar = &sugar
	}
	out.HealthBenefits = append(make([]string, 0, len(e.HealthBenefits)), e.HealthBenefits...)
	return out
}
