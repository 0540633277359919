package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/review"
	"github.com/nutrimate/v1/internal/domain/user"
)

// DefaultPassword is the plain-text password of users built by NewUser
const DefaultPassword = "s3cret-pass"

// NewUser creates a valid account with fake contact details
func NewUser(faker *gofakeit.Faker) *user.User {
	u, err := user.NewUser(faker.Email(), faker.Phone(), DefaultPassword, bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return u
}

// ProfileBuilder provides a fluent interface for building test profiles
type ProfileBuilder struct {
	p *profile.Profile
}

// NewProfileBuilder creates a builder with a valid, condition-free profile
func NewProfileBuilder(faker *gofakeit.Faker) *ProfileBuilder {
	dob := faker.DateRange(
		time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	return &ProfileBuilder{p: &profile.Profile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Name:           faker.Name(),
		DateOfBirth:    dob,
		Gender:         profile.Gender(faker.RandomString([]string{"Male", "Female", "Other"})),
		WeightKg:       faker.Float64Range(45, 110),
		HeightCm:       faker.Float64Range(145, 195),
		Conditions:     []string{"None"},
		DietPreference: profile.DietNonVegetarian,
		ActivityLevel:  profile.ActivityModerate,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}}
}

// ForUser sets the owning user
func (b *ProfileBuilder) ForUser(userID uuid.UUID) *ProfileBuilder {
	b.p.UserID = userID
	return b
}

// WithConditions sets the health conditions
func (b *ProfileBuilder) WithConditions(conditions ...string) *ProfileBuilder {
	b.p.Conditions = conditions
	return b
}

// WithDiet sets the diet preference
func (b *ProfileBuilder) WithDiet(diet profile.DietPreference) *ProfileBuilder {
	b.p.DietPreference = diet
	return b
}

// WithAllergies sets the allergy text
func (b *ProfileBuilder) WithAllergies(allergies string) *ProfileBuilder {
	b.p.Allergies = allergies
	return b
}

// WithGoals sets the goals text
func (b *ProfileBuilder) WithGoals(goals string) *ProfileBuilder {
	b.p.Goals = goals
	return b
}

// WithNutrition sets the daily nutrition targets
func (b *ProfileBuilder) WithNutrition(n profile.Nutrition) *ProfileBuilder {
	b.p.Nutrition = &n
	return b
}

// Build returns the profile
func (b *ProfileBuilder) Build() *profile.Profile {
	return b.p
}

// NewChatMessage creates a stored message with the given foods and verdict
func NewChatMessage(faker *gofakeit.Faker, userID uuid.UUID, allowed *bool, foods ...string) *chat.Message {
	msg, err := chat.NewMessage(userID, faker.Sentence(5), chat.Result{
		IsAllowed: allowed,
		Response:  faker.Sentence(8),
		FoodItems: foods,
	})
	if err != nil {
		panic(err)
	}
	return msg
}

// NewReview creates a valid review for the user
func NewReview(faker *gofakeit.Faker, userID uuid.UUID) *review.Review {
	r, err := review.NewReview(userID, faker.Number(1, 5), faker.Sentence(10), []string{"https://images.example.com/" + faker.UUID() + ".jpg"})
	if err != nil {
		panic(err)
	}
	return r
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}
