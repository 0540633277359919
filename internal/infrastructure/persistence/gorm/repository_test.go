package gorm_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/profile"
	"github.com/nutrimate/v1/internal/domain/user"
	gormrepo "github.com/nutrimate/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutrimate/v1/test/testutils"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	faker *gofakeit.Faker
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := sqlite.SetupDatabase("", logger.Silent)
	s.Require().NoError(err)
	s.db = db
	s.ctx = context.Background()
	s.faker = gofakeit.New(99)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositoryTestSuite) TestUserRepository() {
	repo := gormrepo.NewUserRepository(s.db)
	account := testutils.NewUser(s.faker)

	s.Require().NoError(repo.Create(s.ctx, account))

	s.Run("DuplicateEmail_ShouldReturnErrUserExists", func() {
		twin := user.Reconstruct(uuid.New(), account.Email(), "5551234567", "hash", true, time.Now(), time.Now(), nil)
		s.ErrorIs(repo.Create(s.ctx, twin), user.ErrUserExists)
	})

	s.Run("FindByEmail_ShouldIgnoreCase", func() {
		found, err := repo.FindByEmail(s.ctx, strings.ToUpper(account.Email()))
		s.Require().NoError(err)
		s.Equal(account.ID(), found.ID())
		s.NoError(found.CheckPassword(testutils.DefaultPassword))
	})

	s.Run("ExistsByEmail", func() {
		exists, err := repo.ExistsByEmail(s.ctx, account.Email())
		s.Require().NoError(err)
		s.True(exists)

		exists, err = repo.ExistsByEmail(s.ctx, "nobody@example.com")
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("MissingUser_ShouldReturnErrUserNotFound", func() {
		_, err := repo.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, user.ErrUserNotFound)
	})
}

func (s *RepositoryTestSuite) TestProfileRepository_Upsert() {
	repo := gormrepo.NewProfileRepository(s.db)
	userID := uuid.New()

	first := testutils.NewProfileBuilder(s.faker).
		ForUser(userID).
		WithConditions("Diabetes").
		WithNutrition(profile.Nutrition{TDEE: 2000, EnergyKcal: 1800}).
		Build()
	s.Require().NoError(repo.Upsert(s.ctx, first))

	second := testutils.NewProfileBuilder(s.faker).ForUser(userID).WithConditions("Hypertension").Build()
	second.ID = first.ID
	s.Require().NoError(repo.Upsert(s.ctx, second))

	found, err := repo.FindByUserID(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal([]string{"Hypertension"}, found.Conditions)
	s.Nil(found.Nutrition)

	var count int64
	s.Require().NoError(s.db.Model(&gormrepo.HealthProfileModel{}).Count(&count).Error)
	s.Equal(int64(1), count)

	_, err = repo.FindByUserID(s.ctx, uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *RepositoryTestSuite) TestChatRepository() {
	repo := gormrepo.NewChatRepository(s.db)
	userID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	save := func(offset time.Duration, allowed *bool, foods ...string) *chat.Message {
		msg := testutils.NewChatMessage(s.faker, userID, allowed, foods...)
		msg.Timestamp = base.Add(offset)
		s.Require().NoError(repo.Save(s.ctx, msg))
		return msg
	}

	save(time.Minute, testutils.Bool(true), "apple")
	m2 := save(2*time.Minute, testutils.Bool(false), "jalebi")
	m3 := save(3*time.Minute, nil)
	m4 := save(4*time.Minute, testutils.Bool(false), "apple", "jalebi")
	save(5*time.Minute, testutils.Bool(true), "apple")
	s.Require().NoError(repo.Save(s.ctx, testutils.NewChatMessage(s.faker, uuid.New(), testutils.Bool(true), "apple")))

	s.Run("ListRecent_ShouldPageNewestFirst", func() {
		msgs, total, err := repo.ListRecent(s.ctx, userID, 3, 1)
		s.Require().NoError(err)
		s.Equal(int64(5), total)
		s.Require().Len(msgs, 3)
		s.Equal(m4.ID, msgs[0].ID)
		s.Equal(m3.ID, msgs[1].ID)
		s.Equal(m2.ID, msgs[2].ID)
		s.Nil(msgs[1].IsAllowed)
		s.Equal([]string{}, msgs[1].FoodItems)
	})

	s.Run("Stats", func() {
		stats, err := repo.Stats(s.ctx, userID)
		s.Require().NoError(err)
		s.Equal(int64(5), stats.TotalQueries)
		s.Equal(int64(2), stats.AllowedFoods)
		s.Equal(int64(2), stats.RestrictedFoods)
		s.Equal([]chat.FoodCount{{Food: "apple", Count: 3}, {Food: "jalebi", Count: 2}}, stats.TopFoods)
	})

	s.Run("DeleteByUserID", func() {
		deleted, err := repo.DeleteByUserID(s.ctx, userID)
		s.Require().NoError(err)
		s.Equal(int64(5), deleted)

		_, total, err := repo.ListRecent(s.ctx, userID, 10, 0)
		s.Require().NoError(err)
		s.Zero(total)
	})
}

func (s *RepositoryTestSuite) TestPredictionRepository() {
	repo := gormrepo.NewPredictionRepository(s.db)
	userID := uuid.New()

	older, err := profile.NewPrediction(userID, []byte(`{"breakfast":["oats"]}`))
	s.Require().NoError(err)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer, err := profile.NewPrediction(userID, []byte(`[{"meal":"dinner"}]`))
	s.Require().NoError(err)

	s.Require().NoError(repo.Create(s.ctx, older))
	s.Require().NoError(repo.Create(s.ctx, newer))

	preds, err := repo.FindByUserID(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(preds, 2)
	s.Equal(newer.ID, preds[0].ID)
	s.JSONEq(`{"breakfast":["oats"]}`, string(preds[1].Meals))
	s.True(json.Valid(preds[0].Meals))
}

func (s *RepositoryTestSuite) TestReviewRepository() {
	repo := gormrepo.NewReviewRepository(s.db)
	for i := 0; i < 3; i++ {
		r := testutils.NewReview(s.faker, uuid.New())
		r.CreatedAt = r.CreatedAt.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(repo.Create(s.ctx, r))
	}

	reviews, total, err := repo.List(s.ctx, 0, 2)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(reviews, 2)
	s.True(reviews[0].CreatedAt.After(reviews[1].CreatedAt))
	s.Len(reviews[0].Images, 1)
}

func (s *RepositoryTestSuite) TestSeedDatabase_IsIdempotent() {
	s.Require().NoError(sqlite.SeedDatabase(s.db))
	s.Require().NoError(sqlite.SeedDatabase(s.db))

	found, err := gormrepo.NewUserRepository(s.db).FindByEmail(s.ctx, sqlite.DemoEmail)
	s.Require().NoError(err)
	s.NoError(found.CheckPassword("password"))

	p, err := gormrepo.NewProfileRepository(s.db).FindByUserID(s.ctx, found.ID())
	s.Require().NoError(err)
	s.True(p.Health().HasCondition(profile.ConditionDiabetes))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
