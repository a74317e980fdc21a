package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/types"
)

// ContactFormHandler accepts messages from the public contact form.
type ContactFormHandler struct {
	messageService *service.MessageService
}

func NewContactFormHandler(messageService *service.MessageService) *ContactFormHandler {
	return &ContactFormHandler{messageService: messageService}
}

func (h *ContactFormHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.Submit)
}

func (h *ContactFormHandler) Submit(c *gin.Context) {
	var req types.ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Submit(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID, "message": "thanks for reaching out, we will get back to you"})
}
