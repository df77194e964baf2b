package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/service"
	"github.com/swych-ai/swych_api/internal/utils"
)

// ContactHandler handles POST /api/send-email.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Send dispatches a contact-form submission and returns the provider's
// message id.
func (h *ContactHandler) Send(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.contactService.Send(c.Request.Context(), &req)
	if err != nil {
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		log.Error().Err(err).Msg("contact dispatch failed")
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(200, gin.H{"message": "Email sent successfully", "id": id})
}
