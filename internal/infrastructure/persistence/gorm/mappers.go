package gorm

import (
	"encoding/json"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return user.Reconstruct(
		m.ID,
		m.Email,
		m.Phone,
		m.PasswordHash,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
		m.LastLoginAt,
	)
}

// ProfileToModel converts a domain profile to a GORM model
func ProfileToModel(p *profile.Profile) *HealthProfileModel {
	model := &HealthProfileModel{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		DateOfBirth:    p.DateOfBirth,
		Gender:         string(p.Gender),
		WeightKg:       p.WeightKg,
		HeightCm:       p.HeightCm,
		Conditions:     StringSlice(p.Conditions),
		DietPreference: string(p.DietPreference),
		Allergies:      p.Allergies,
		ActivityLevel:  string(p.ActivityLevel),
		Goals:          p.Goals,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if n := p.Nutrition; n != nil {
		model.Nutrition = NutritionModel{
			BMR:           n.BMR,
			TDEE:          n.TDEE,
			EnergyKcal:    n.EnergyKcal,
			ProteinG:      n.ProteinG,
			CarbG:         n.CarbG,
			FatG:          n.FatG,
			FiberG:        n.FiberG,
			FreeSugarG:    n.FreeSugarG,
			CholesterolMg: n.CholesterolMg,
		}
	}
	return model
}

// ModelToProfile converts a GORM model to a domain profile. All-zero
// nutrition columns mean no targets were stored.
func ModelToProfile(m *HealthProfileModel) *profile.Profile {
	p := &profile.Profile{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		DateOfBirth:    m.DateOfBirth,
		Gender:         profile.Gender(m.Gender),
		WeightKg:       m.WeightKg,
		HeightCm:       m.HeightCm,
		Conditions:     []string(m.Conditions),
		DietPreference: profile.DietPreference(m.DietPreference),
		Allergies:      m.Allergies,
		ActivityLevel:  profile.ActivityLevel(m.ActivityLevel),
		Goals:          m.Goals,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Nutrition != (NutritionModel{}) {
		n := m.Nutrition
		p.Nutrition = &profile.Nutrition{
			BMR:           n.BMR,
			TDEE:          n.TDEE,
			EnergyKcal:    n.EnergyKcal,
			ProteinG:      n.ProteinG,
			CarbG:         n.CarbG,
			FatG:          n.FatG,
			FiberG:        n.FiberG,
			FreeSugarG:    n.FreeSugarG,
			CholesterolMg: n.CholesterolMg,
		}
	}
	return p
}

// MessageToModel converts a chat message to a GORM model
func MessageToModel(msg *chat.Message) *ChatMessageModel {
	return &ChatMessageModel{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Message:   msg.Text,
		Response:  msg.Response,
		FoodItems: StringSlice(msg.FoodItems),
		IsAllowed: msg.IsAllowed,
		CreatedAt: msg.Timestamp,
	}
}

// ModelToMessage converts a GORM model to a chat message
func ModelToMessage(m *ChatMessageModel) *chat.Message {
	foods := []string(m.FoodItems)
	if foods == nil {
		foods = []string{}
	}
	return &chat.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Message,
		Response:  m.Response,
		FoodItems: foods,
		IsAllowed: m.IsAllowed,
		Timestamp: m.CreatedAt,
	}
}

// PredictionToModel converts a prediction to a GORM model
func PredictionToModel(p *profile.Prediction) *PredictionModel {
	return &PredictionModel{
		ID:        p.ID,
		UserID:    p.UserID,
		Meals:     RawJSON(p.Meals),
		CreatedAt: p.CreatedAt,
	}
}

// ModelToPrediction converts a GORM model to a prediction
func ModelToPrediction(m *PredictionModel) *profile.Prediction {
	return &profile.Prediction{
		ID:        m.ID,
		UserID:    m.UserID,
		Meals:     json.RawMessage(m.Meals),
		CreatedAt: m.CreatedAt,
	}
}

// ReviewToModel converts a review to a GORM model
func ReviewToModel(r *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:         r.ID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		ReviewText: r.Text,
		Images:     StringSlice(r.Images),
		CreatedAt:  r.CreatedAt,
	}
}

// ModelToReview converts a GORM model to a review
func ModelToReview(m *ReviewModel) *review.Review {
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}
	return &review.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Text:      m.ReviewText,
		Images:    images,
		CreatedAt: m.CreatedAt,
	}
}
