package v1

import (
	"net/http"
	"strconv"

	"github.com/communityhub/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initCommunityRoutes(api *gin.RouterGroup) {
	volunteers := api.Group("/volunteers")
	{
		volunteers.POST("", h.createVolunteer)
		volunteers.GET("", h.adminIdentityMiddleware, h.listVolunteers)
		volunteers.DELETE("/:id", h.adminIdentityMiddleware, h.deleteVolunteer)
	}

	suggestions := api.Group("/suggestions")
	{
		suggestions.POST("", h.createSuggestion)
		suggestions.GET("", h.adminIdentityMiddleware, h.listSuggestions)
		suggestions.DELETE("/:id", h.adminIdentityMiddleware, h.deleteSuggestion)
	}

	messages := api.Group("/messages")
	{
		messages.POST("", h.createMessage)
		messages.GET("", h.adminIdentityMiddleware, h.listMessages)
		messages.PATCH("/:id/status", h.adminIdentityMiddleware, h.setMessageStatus)
		messages.DELETE("/:id", h.adminIdentityMiddleware, h.deleteMessage)
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

type volunteerRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required,phonenumber"`
	Availability string `json:"availability" binding:"max=200"`
	Interests    string `json:"interests" binding:"max=500"`
}

// @Summary Submit volunteer application
// @Tags Community
// @Accept  json
// @Produce  json
// @Param input body volunteerRequest true "Volunteer details"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /volunteers [post]
func (h *Handler) createVolunteer(c *gin.Context) {
	var req volunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	v := &domain.Volunteer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Availability: req.Availability,
		Interests:    req.Interests,
	}

	if err := h.services.Volunteers.Create(c.Request.Context(), v); err != nil {
		respondServiceError(c, "create volunteer", err)
		return
	}

	respondCreated(c, "application received", v)
}

// @Summary List volunteer applications
// @Tags Community
// @Produce  json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /volunteers [get]
func (h *Handler) listVolunteers(c *gin.Context) {
	page, limit := pageParams(c)

	volunteers, err := h.services.Volunteers.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, "list volunteers", err)
		return
	}

	respondOK(c, "ok", volunteers)
}

// @Summary Delete volunteer application
// @Tags Community
// @Produce  json
// @Param id path string true "Volunteer ID (UUID)"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /volunteers/{id} [delete]
func (h *Handler) deleteVolunteer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Volunteers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "delete volunteer", err)
		return
	}

	respondOK(c, "deleted", nil)
}

type suggestionRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Body    string `json:"body" binding:"required,max=2000"`
}

// @Summary Submit suggestion
// @Tags Community
// @Accept  json
// @Produce  json
// @Param input body suggestionRequest true "Suggestion"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /suggestions [post]
func (h *Handler) createSuggestion(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	s := &domain.Suggestion{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := h.services.Suggestions.Create(c.Request.Context(), s); err != nil {
		respondServiceError(c, "create suggestion", err)
		return
	}

	respondCreated(c, "suggestion received", s)
}

// @Summary List suggestions
// @Tags Community
// @Produce  json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /suggestions [get]
func (h *Handler) listSuggestions(c *gin.Context) {
	page, limit := pageParams(c)

	suggestions, err := h.services.Suggestions.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, "list suggestions", err)
		return
	}

	respondOK(c, "ok", suggestions)
}

// @Summary Delete suggestion
// @Tags Community
// @Produce  json
// @Param id path string true "Suggestion ID (UUID)"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /suggestions/{id} [delete]
func (h *Handler) deleteSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Suggestions.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "delete suggestion", err)
		return
	}

	respondOK(c, "deleted", nil)
}

type messageRequest struct {
	Name  string  `json:"name" binding:"required,min=2,max=100"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone" binding:"omitempty,phonenumber"`
	Body  string  `json:"body" binding:"required,max=2000"`
}

// @Summary Send contact message
// @Tags Community
// @Accept  json
// @Produce  json
// @Param input body messageRequest true "Message"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /messages [post]
func (h *Handler) createMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	m := &domain.ContactMessage{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Body:  req.Body,
	}

	if err := h.services.Messages.Create(c.Request.Context(), m); err != nil {
		respondServiceError(c, "create message", err)
		return
	}

	respondCreated(c, "message received", m)
}

// @Summary List contact messages
// @Tags Community
// @Produce  json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "unread or read"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /messages [get]
func (h *Handler) listMessages(c *gin.Context) {
	page, limit := pageParams(c)

	var status *domain.MessageStatus
	if s := domain.MessageStatus(c.Query("status")); s == domain.MessageRead || s == domain.MessageUnread {
		status = &s
	}

	messages, err := h.services.Messages.GetAll(c.Request.Context(), page, limit, status)
	if err != nil {
		respondServiceError(c, "list messages", err)
		return
	}

	respondOK(c, "ok", messages)
}

type messageStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unread read"`
}

// @Summary Update message status
// @Tags Community
// @Accept  json
// @Produce  json
// @Param id path string true "Message ID (UUID)"
// @Param input body messageStatusRequest true "New status"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /messages/{id}/status [patch]
func (h *Handler) setMessageStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req messageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Messages.SetStatus(c.Request.Context(), id, domain.MessageStatus(req.Status)); err != nil {
		respondServiceError(c, "set message status", err)
		return
	}

	respondOK(c, "updated", nil)
}

// @Summary Delete contact message
// @Tags Community
// @Produce  json
// @Param id path string true "Message ID (UUID)"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /messages/{id} [delete]
func (h *Handler) deleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Messages.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "delete message", err)
		return
	}

	respondOK(c, "deleted", nil)
}
