package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// ProfileRequest is the health profile form
type ProfileRequest struct {
	Name           string             `json:"name" validate:"required,max=100,no_xss"`
	DOB            string             `json:"dob" validate:"required"`
	Gender         string             `json:"gender" validate:"required"`
	Weight         float64            `json:"weight" validate:"gt=0,lte=500"`
	Height         float64            `json:"height" validate:"gt=0,lte=300"`
	Conditions     []string           `json:"conditions" validate:"omitempty,max=20,dive,max=60,no_xss"`
	DietPreference string             `json:"dietPreference"`
	Allergies      string             `json:"allergies" validate:"max=500,no_xss"`
	ActivityLevel  string             `json:"activityLevel"`
	Goals          string             `json:"goals" validate:"max=500,no_xss"`
	Nutrition      *profile.Nutrition `json:"nutrition"`
}

var dobLayouts = []string{"2006-01-02", time.RFC3339}

func (req ProfileRequest) toProfile() (*profile.Profile, error) {
	var dob time.Time
	var err error
	for _, layout := range dobLayouts {
		if dob, err = time.Parse(layout, req.DOB); err == nil {
			break
		}
	}
	if err != nil {
		return nil, apperrors.NewValidationError("dob must be a date in YYYY-MM-DD format")
	}

	return &profile.Profile{
		Name:           req.Name,
		DateOfBirth:    dob,
		Gender:         profile.Gender(req.Gender),
		WeightKg:       req.Weight,
		HeightCm:       req.Height,
		Conditions:     req.Conditions,
		DietPreference: profile.DietPreference(req.DietPreference),
		Allergies:      req.Allergies,
		ActivityLevel:  profile.ActivityLevel(req.ActivityLevel),
		Goals:          req.Goals,
		Nutrition:      req.Nutrition,
	}, nil
}

// ProfileAPIHandlers serves the health profile form
type ProfileAPIHandlers struct {
	profiles  inbound.ProfileService
	validator *security.Validator
	logger    *zap.Logger
}

// NewProfileAPIHandlers creates the profile handlers
func NewProfileAPIHandlers(profiles inbound.ProfileService, validator *security.Validator, logger *zap.Logger) *ProfileAPIHandlers {
	return &ProfileAPIHandlers{profiles: profiles, validator: validator, logger: logger}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileAPIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, p, "")
}

// SaveProfile handles POST /api/v1/profile. It creates the profile or
// replaces the existing one.
func (h *ProfileAPIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req ProfileRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	p, err := req.toProfile()
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	saved, err := h.profiles.Save(r.Context(), userID, p)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, saved, "Profile saved successfully")
}
