package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/ports/outbound"
)

// ChatRepository implements the chat history repository using GORM
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) outbound.ChatRepository {
	return &ChatRepository{db: db}
}

// Save stores one chat exchange
func (r *ChatRepository) Save(ctx context.Context, msg *chat.Message) error {
	return r.db.WithContext(ctx).Create(MessageToModel(msg)).Error
}

// ListRecent returns a page of messages, newest first, and the total count
func (r *ChatRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit, skip int) ([]*chat.Message, int64, error) {
	var total int64
	if err := r.forUser(ctx, userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ChatMessageModel
	err := r.forUser(ctx, userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(skip).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	msgs := make([]*chat.Message, len(models))
	for i := range models {
		msgs[i] = ModelToMessage(&models[i])
	}
	return msgs, total, nil
}

// DeleteByUserID removes the user's whole history
func (r *ChatRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&ChatMessageModel{})
	return result.RowsAffected, result.Error
}

// Stats counts the user's queries by verdict and tallies the foods asked about
func (r *ChatRepository) Stats(ctx context.Context, userID uuid.UUID) (*chat.Stats, error) {
	stats := &chat.Stats{}

	if err := r.forUser(ctx, userID).Count(&stats.TotalQueries).Error; err != nil {
		return nil, err
	}
	if err := r.forUser(ctx, userID).Where("is_allowed = ?", true).Count(&stats.AllowedFoods).Error; err != nil {
		return nil, err
	}
	if err := r.forUser(ctx, userID).Where("is_allowed = ?", false).Count(&stats.RestrictedFoods).Error; err != nil {
		return nil, err
	}

	var models []ChatMessageModel
	if err := r.forUser(ctx, userID).Select("food_items").Find(&models).Error; err != nil {
		return nil, err
	}
	foodLists := make([][]string, len(models))
	for i := range models {
		foodLists[i] = models[i].FoodItems
	}
	stats.TopFoods = chat.TopFoods(foodLists, chat.TopFoodsLimit)

	return stats, nil
}

func (r *ChatRepository) forUser(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&ChatMessageModel{}).Where("user_id = ?", userID)
}
