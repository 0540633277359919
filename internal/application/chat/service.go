// Package chat provides the application layer for the diet chatbot
package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/domain/chat"
	"github.com/nutrimate/v1/internal/domain/eligibility"
	"github.com/nutrimate/v1/internal/domain/food"
	"github.com/nutrimate/v1/internal/ports/inbound"
	"github.com/nutrimate/v1/internal/ports/outbound"
	apperrors "github.com/nutrimate/v1/pkg/errors"
)

// History paging bounds
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
	MaxCheckFoods       = 50
)

// Query outcomes reported to metrics
const (
	OutcomeAllowed   = "allowed"
	OutcomeDenied    = "denied"
	OutcomeUndecided = "unknown"
)

var tracer = otel.Tracer("github.com/nutrimate/v1/internal/application/chat")

// ChatService implements the chat use cases
type ChatService struct {
	chatRepo  outbound.ChatRepository
	profiles  inbound.ProfileService
	resolver  *food.Resolver
	evaluator *eligibility.Evaluator
	suggester *eligibility.Suggester
	composer  *chat.Composer
	metrics   outbound.DomainMetrics
	logger    *zap.Logger
}

var _ inbound.ChatService = (*ChatService)(nil)

// NewChatService creates a new chat service over the given food catalog
func NewChatService(
	chatRepo outbound.ChatRepository,
	profiles inbound.ProfileService,
	catalog *food.Catalog,
	metrics outbound.DomainMetrics,
	logger *zap.Logger,
) *ChatService {
	resolver := food.NewResolver(catalog)
	evaluator := eligibility.NewEvaluator()
	suggester := eligibility.NewSuggester(resolver, evaluator)

	return &ChatService{
		chatRepo:  chatRepo,
		profiles:  profiles,
		resolver:  resolver,
		evaluator: evaluator,
		suggester: suggester,
		composer:  chat.NewComposer(resolver, evaluator, suggester),
		metrics:   metrics,
		logger:    logger.Named("chat-service"),
	}
}

// Ask answers one chat message and stores the exchange
func (s *ChatService) Ask(ctx context.Context, userID uuid.UUID, message string) (*inbound.AskResult, error) {
	ctx, span := tracer.Start(ctx, "chat.Ask")
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("Message is required")
	}

	h, err := s.profiles.Health(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile lookup failed")
		return nil, err
	}

	result := s.composer.HandleQuery(message, h)
	span.SetAttributes(
		attribute.StringSlice("chat.food_items", result.FoodItems),
		attribute.String("chat.outcome", outcome(result)),
	)
	s.record(result)

	msg, err := chat.NewMessage(userID, message, result)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.chatRepo.Save(ctx, msg); err != nil {
		span.RecordError(err)
		return nil, apperrors.NewDatabaseError("save chat message", err)
	}

	s.logger.Debug("Answered chat message",
		zap.String("user_id", userID.String()),
		zap.Strings("food_items", result.FoodItems),
		zap.String("outcome", outcome(result)),
	)

	return &inbound.AskResult{
		Message:   msg.Response,
		FoodItems: msg.FoodItems,
		IsAllowed: msg.IsAllowed,
		Timestamp: msg.Timestamp,
	}, nil
}

// History returns one page of the user's chat history, oldest first
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit, skip int) (*inbound.HistoryPage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if skip < 0 {
		skip = 0
	}

	msgs, total, err := s.chatRepo.ListRecent(ctx, userID, limit, skip)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list chat history", err)
	}

	ordered := make([]*chat.Message, len(msgs))
	for i, m := range msgs {
		ordered[len(msgs)-1-i] = m
	}

	return &inbound.HistoryPage{
		Messages: ordered,
		Pagination: inbound.Pagination{
			Total:   total,
			Limit:   limit,
			Skip:    skip,
			HasMore: int64(skip+limit) < total,
		},
	}, nil
}

// ClearHistory deletes every stored message of the user
func (s *ChatService) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	deleted, err := s.chatRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return apperrors.NewDatabaseError("clear chat history", err)
	}
	s.logger.Info("Cleared chat history",
		zap.String("user_id", userID.String()),
		zap.Int64("deleted", deleted),
	)
	return nil
}

// Stats summarises the user's chat history
func (s *ChatService) Stats(ctx context.Context, userID uuid.UUID) (*chat.Stats, error) {
	stats, err := s.chatRepo.Stats(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("chat stats", err)
	}
	if stats.TopFoods == nil {
		stats.TopFoods = []chat.FoodCount{}
	}
	return stats, nil
}

// CheckFoods evaluates each named food of a meal plan on its own
func (s *ChatService) CheckFoods(ctx context.Context, userID uuid.UUID, foods []string) ([]inbound.FoodCheck, error) {
	if len(foods) == 0 {
		return nil, apperrors.NewValidationError("At least one food is required")
	}
	if len(foods) > MaxCheckFoods {
		return nil, apperrors.NewValidationError("Too many foods in one request")
	}

	h, err := s.profiles.Health(ctx, userID)
	if err != nil {
		return nil, err
	}

	checks := make([]inbound.FoodCheck, 0, len(foods))
	for _, q := range foods {
		check := inbound.FoodCheck{Query: q}
		entry, ok := s.resolver.FindFood(q)
		if ok {
			v := s.evaluator.Evaluate(entry, h)
			check.Food = entry.Name
			check.Found = true
			check.Verdict = &v
			if !v.IsAllowed {
				check.Alternatives = s.suggester.SuggestAlternatives(entry, h)
			}
			s.metrics.RecordFoodEvaluation(entry.Name, v.IsAllowed)
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// Foods lists the catalog
func (s *ChatService) Foods() []food.Entry {
	return s.resolver.Catalog().Entries()
}

func (s *ChatService) record(result chat.Result) {
	s.metrics.RecordFoodQuery(outcome(result))
	// a multi-food verdict is not attributable to one food
	if result.IsAllowed == nil || len(result.FoodItems) != 1 {
		return
	}
	s.metrics.RecordFoodEvaluation(result.FoodItems[0], *result.IsAllowed)
}

func outcome(r chat.Result) string {
	switch {
	case r.IsAllowed == nil:
		return OutcomeUndecided
	case *r.IsAllowed:
		return OutcomeAllowed
	default:
		return OutcomeDenied
	}
}
