package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mycare/backend/internal/middleware"
	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/types"
)

// ContactHandler serves the authenticated user's emergency contacts.
type ContactHandler struct {
	contactService *service.ContactService
	authService    *service.AuthService
}

func NewContactHandler(contactService *service.ContactService, authService *service.AuthService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		authService:    authService,
	}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	contacts := router.Group("/contacts")
	contacts.Use(middleware.AuthMiddleware(h.authService))
	{
		contacts.GET("", h.List)
		contacts.POST("", h.Add)
		contacts.DELETE("/:id", h.Remove)
	}
}

func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (h *ContactHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactService.Add(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.contactService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
