package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/service"
	"github.com/swych-ai/swych_api/internal/utils"
)

// ClientHandler handles the /api/clients endpoints.
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Get handles GET /api/clients: a single fetch when the id parameter is
// present, a filtered listing otherwise.
func (h *ClientHandler) Get(c *gin.Context) {
	if _, present := c.GetQuery("id"); present {
		id, ok := idQuery(c)
		if !ok {
			utils.Error(c, 400, "INVALID_ID", "Valid ID is required")
			return
		}
		client, err := h.clientService.Get(id)
		if err != nil {
			utils.FromError(c, err)
			return
		}
		c.JSON(200, client)
		return
	}

	f := repository.ClientFilter{
		Search: c.Query("search"),
		Limit:  intQuery(c, "limit", 10),
		Offset: intQuery(c, "offset", 0),
	}
	clients, err := h.clientService.List(c.Request.Context(), f)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	c.JSON(200, clients)
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req service.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	c.JSON(201, client)
}

// Update handles PUT /api/clients?id=N with any subset of mutable fields.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idQuery(c)
	if !ok {
		utils.Error(c, 400, "INVALID_ID", "Valid ID is required")
		return
	}

	var req service.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	c.JSON(200, client)
}

// Delete handles DELETE /api/clients?id=N, returning the deleted record as
// confirmation.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idQuery(c)
	if !ok {
		utils.Error(c, 400, "INVALID_ID", "Valid ID is required")
		return
	}

	client, err := h.clientService.Delete(c.Request.Context(), id)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	c.JSON(200, gin.H{
		"message": "Client deleted successfully",
		"client":  client,
	})
}
