package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/http/response"
	"github.com/nutrimate/v1/internal/infrastructure/security"
	"github.com/nutrimate/v1/internal/ports/inbound"
)

// ChatRequest is one message typed into the diet chat
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000,safe_text"`
}

// CheckFoodsRequest is a meal plan to pre-check
type CheckFoodsRequest struct {
	Foods []string `json:"foods" validate:"required,min=1,max=50,dive,required,max=60"`
}

// ChatAPIHandlers serves the diet chat endpoints
type ChatAPIHandlers struct {
	chat      inbound.ChatService
	validator *security.Validator
	logger    *zap.Logger
}

// NewChatAPIHandlers creates the chat handlers
func NewChatAPIHandlers(chat inbound.ChatService, validator *security.Validator, logger *zap.Logger) *ChatAPIHandlers {
	return &ChatAPIHandlers{chat: chat, validator: validator, logger: logger}
}

// Ask handles POST /api/v1/chat
func (h *ChatAPIHandlers) Ask(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req ChatRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.chat.Ask(r.Context(), userID, req.Message)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, result, "")
}

// History handles GET /api/v1/chat/history?limit=&skip=
func (h *ChatAPIHandlers) History(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	page, err := h.chat.History(r.Context(), userID, limit, skip)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, page, "")
}

// ClearHistory handles DELETE /api/v1/chat/history
func (h *ChatAPIHandlers) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	if err := h.chat.ClearHistory(r.Context(), userID); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, nil, "Chat history cleared")
}

// Stats handles GET /api/v1/chat/stats
func (h *ChatAPIHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	stats, err := h.chat.Stats(r.Context(), userID)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, stats, "")
}

// CheckFoods handles POST /api/v1/chat/check
func (h *ChatAPIHandlers) CheckFoods(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	var req CheckFoodsRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	checks, err := h.chat.CheckFoods(r.Context(), userID, req.Foods)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, checks, "")
}

// Foods handles GET /api/v1/foods
func (h *ChatAPIHandlers) Foods(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, h.chat.Foods(), "")
}
