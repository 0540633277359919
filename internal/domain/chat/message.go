package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one stored chat exchange: the user's question and the reply
type Message struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"message"`
	Response  string    `json:"response"`
	FoodItems []string  `json:"foodItems"`
	IsAllowed *bool     `json:"isAllowed"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage records a reply for persistence
func NewMessage(userID uuid.UUID, text string, result Result) (*Message, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	foods := append([]string{}, result.FoodItems...)
	var allowed *bool
	if result.IsAllowed != nil {
		v := *result.IsAllowed
		allowed = &v
	}

	return &Message{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Response:  result.Response,
		FoodItems: foods,
		IsAllowed: allowed,
		Timestamp: time.Now().UTC(),
	}, nil
}
