package food

import (
	"fmt"
	"strings"
)

// Category is the closed set of food groups the eligibility rules branch on.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryVegetable
	CategoryStarchyVegetable
	CategoryLeafyGreen
	CategoryFruit
	CategoryGrain
	CategoryWholeGrain
	CategoryLeanProtein
	CategoryProtein
	CategoryDairyProtein
	CategoryPlantProtein
	CategoryLegume
	CategoryDairy
	CategoryDessert
	CategoryFriedSnack
	CategoryBeverage
	CategoryNut
)

var categoryNames = map[Category]string{
	CategoryVegetable:        "vegetable",
	CategoryStarchyVegetable: "starchy vegetable",
	CategoryLeafyGreen:       "leafy green",
	CategoryFruit:            "fruit",
	CategoryGrain:            "grain",
	CategoryWholeGrain:       "whole grain",
	CategoryLeanProtein:      "lean protein",
	CategoryProtein:          "protein",
	CategoryDairyProtein:     "dairy protein",
	CategoryPlantProtein:     "plant protein",
	CategoryLegume:           "legume",
	CategoryDairy:            "dairy",
	CategoryDessert:          "dessert",
	CategoryFriedSnack:       "fried snack",
	CategoryBeverage:         "beverage",
	CategoryNut:              "nut",
}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := CategoryVegetable; c <= CategoryNut; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory maps a category tag such as "fried snack" to its Category.
func ParseCategory(s string) (Category, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for c, name := range categoryNames {
		if name == tag {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// String returns the category tag
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// In reports whether c is any of the given categories
func (c Category) In(set ...Category) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
