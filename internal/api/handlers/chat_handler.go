package handlers

import (
	"hrcentral/internal/dto"
	"hrcentral/internal/models"
	"hrcentral/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the assistant
// @Description Answers a business question for the given role using retrieved context. Always responds 200 with a usable answer.
// @Tags chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Security BearerAuth
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warn("Malformed chat request", zap.Error(err))
		return c.JSON(dto.ChatResponse{
			Answer:             "I encountered an error processing your request. Please try again.",
			Sources:            []string{},
			SuggestedFollowups: []string{"Tell me more"},
		})
	}

	role, _ := models.ParseRole(req.Role)

	result := h.chatService.Ask(c.Context(), role, req.Query)

	return c.JSON(dto.ChatResponse{
		Answer:             result.Answer,
		Sources:            result.Sources,
		SuggestedFollowups: result.SuggestedFollowups,
	})
}
