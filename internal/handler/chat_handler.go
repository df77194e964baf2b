package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/service"
	"github.com/swych-ai/swych_api/internal/utils"
	"github.com/swych-ai/swych_api/pkg/gemini"
)

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest is the chat proxy request body.
type ChatRequest struct {
	Contents []gemini.Content `json:"contents"`
}

// Chat forwards the caller's role-tagged content list to the generative
// model fallback chain. On success the raw upstream JSON payload is returned
// verbatim; when every model fails the response status mirrors the last
// upstream failure and the body carries {error, details}.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	raw, err := h.chatService.Chat(c.Request.Context(), req.Contents)
	if err != nil {
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(upstream.Status, gin.H{
				"error":   "Failed to process chat message. Please try again.",
				"details": upstream.Detail,
			})
			return
		}
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		log.Error().Err(err).Msg("chat proxy failed")
		c.JSON(500, gin.H{"error": "Failed to process chat message. Please try again."})
		return
	}

	c.Data(200, "application/json", raw)
}
