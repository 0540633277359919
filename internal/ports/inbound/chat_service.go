// Package inbound defines the use cases exposed to driving adapters (HTTP handlers)
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/eligibility"
	"github.com/nutrimate/v1/internal/domain/food"
)

// ChatService answers diet questions against the caller's health profile
type ChatService interface {
	Ask(ctx context.Context, userID uuid.UUID, message string) (*AskResult, error)
	History(ctx context.Context, userID uuid.UUID, limit, skip int) (*HistoryPage, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID) (*chat.Stats, error)
	CheckFoods(ctx context.Context, userID uuid.UUID, foods []string) ([]FoodCheck, error)
	Foods() []food.Entry
}

// AskResult is the reply to one chat message
type AskResult struct {
	Message   string    `json:"message"`
	FoodItems []string  `json:"foodItems"`
	IsAllowed *bool     `json:"isAllowed"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPage is one page of chat history, oldest message first
type HistoryPage struct {
	Messages   []*chat.Message `json:"messages"`
	Pagination Pagination      `json:"pagination"`
}

// Pagination describes a history page
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Skip    int   `json:"skip"`
	HasMore bool  `json:"hasMore"`
}

// FoodCheck is the verdict for one food of a meal plan. Found is false when
// the name did not resolve to a catalog food.
type FoodCheck struct {
	Query        string               `json:"query"`
	Food         string               `json:"food,omitempty"`
	Found        bool                 `json:"found"`
	Verdict      *eligibility.Verdict `json:"verdict,omitempty"`
	Alternatives []string             `json:"alternatives,omitempty"`
}
