package profile

import "errors"

var (
	ErrNameRequired          = errors.New("name is required")
	ErrInvalidDateOfBirth    = errors.New("date of birth must be in the past")
	ErrInvalidGender         = errors.New("gender must be Male, Female or Other")
	ErrInvalidWeight         = errors.New("weight must be greater than 0 kg")
	ErrInvalidHeight         = errors.New("height must be greater than 0 cm")
	ErrInvalidDietPreference = errors.New("diet preference must be Vegetarian, Non-Vegetarian or Vegan")
	ErrInvalidActivityLevel  = errors.New("activity level must be Sedentary, Light, Moderate, Active or Very Active")
	ErrProfileNotFound       = errors.New("profile not found")

	ErrInvalidMeals = errors.New("meal prediction must be a JSON object or array")
)
