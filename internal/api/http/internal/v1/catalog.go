package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// resourceTypes maps the public path segments to the catalog item type
// behind them. One set of handlers serves all three resources.
var resourceTypes = map[string]domain.ItemType{
	"events":       domain.ItemTypeEvent,
	"courses":      domain.ItemTypeCourse,
	"competitions": domain.ItemTypeCompetition,
}

func (h *Handler) initCatalogRoutes(api *gin.RouterGroup) {
	for path, itemType := range resourceTypes {
		group := api.Group("/" + path)
		t := itemType
		{
			group.GET("", h.listItems(t))
			group.GET("/:id", h.getItem)
			group.POST("/:id/register", h.registerFree)

			group.POST("", h.adminIdentityMiddleware, h.createItem(t))
			group.PUT("/:id", h.adminIdentityMiddleware, h.updateItem)
			group.DELETE("/:id", h.adminIdentityMiddleware, h.deleteItem)
		}
	}
}

// @Summary List catalog items
// @Tags Catalog
// @Description List events, courses or competitions with paging, search and sort
// @Accept  json
// @Produce  json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Free-text title search"
// @Param status query string false "Item status filter (admin views)"
// @Param sort_by query string false "created_at, starts_at or title"
// @Param order query string false "asc or desc"
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /events [get]
func (h *Handler) listItems(itemType domain.ItemType) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		filters := &repository.CatalogFilters{
			Type:       &itemType,
			SortBy:     c.Query("sort_by"),
			Order:      c.Query("order"),
			PublicOnly: true,
		}
		if search := c.Query("search"); search != "" {
			filters.Search = &search
		}
		if status := domain.ItemStatus(c.Query("status")); status != "" && status.Valid() {
			filters.Status = &status
			// Status filtering exposes drafts, so it stays an admin view.
			if _, err := h.parseAuthHeader(c); err == nil {
				filters.PublicOnly = false
			}
		}

		items, total, err := h.services.Catalog.GetAll(c.Request.Context(), page, limit, filters)
		if err != nil {
			respondServiceError(c, "list catalog items", err)
			return
		}

		respondOK(c, "ok", pagination{Items: items, Total: total, Page: page, Limit: limit})
	}
}

// @Summary Get catalog item
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /events/{id} [get]
func (h *Handler) getItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "get catalog item", err)
		return
	}

	respondOK(c, "ok", item)
}

type itemRequest struct {
	Title           string     `json:"title" binding:"required,min=3,max=200"`
	Description     string     `json:"description" binding:"required"`
	Location        *string    `json:"location"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Instructor      *string    `json:"instructor"`
	DurationWeeks   *int       `json:"duration_weeks"`
	AgeMin          *int       `json:"age_min"`
	AgeMax          *int       `json:"age_max"`
	Fee             int64      `json:"fee" binding:"min=0"`
	MaxParticipants int        `json:"max_participants" binding:"required,min=1"`
	Status          string     `json:"status"`
}

// @Summary Create catalog item
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param input body itemRequest true "Item details"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Security AdminAuth
// @Router /events [post]
func (h *Handler) createItem(itemType domain.ItemType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			validationErrorResponse(c, err)
			return
		}

		item := &domain.CatalogItem{
			Type:            itemType,
			Title:           req.Title,
			Description:     req.Description,
			Location:        req.Location,
			StartsAt:        req.StartsAt,
			EndsAt:          req.EndsAt,
			Instructor:      req.Instructor,
			DurationWeeks:   req.DurationWeeks,
			AgeMin:          req.AgeMin,
			AgeMax:          req.AgeMax,
			Fee:             req.Fee,
			MaxParticipants: req.MaxParticipants,
			Status:          domain.ItemStatus(req.Status),
		}

		if err := h.services.Catalog.Create(c.Request.Context(), item); err != nil {
			respondServiceError(c, "create catalog item", err)
			return
		}

		respondCreated(c, "created", item)
	}
}

// @Summary Update catalog item
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param id path string true "Item ID (UUID)"
// @Param input body itemRequest true "Item details"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Security AdminAuth
// @Router /events/{id} [put]
func (h *Handler) updateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "get catalog item", err)
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	item.Title = req.Title
	item.Description = req.Description
	item.Location = req.Location
	item.StartsAt = req.StartsAt
	item.EndsAt = req.EndsAt
	item.Instructor = req.Instructor
	item.DurationWeeks = req.DurationWeeks
	item.AgeMin = req.AgeMin
	item.AgeMax = req.AgeMax
	item.Fee = req.Fee
	item.MaxParticipants = req.MaxParticipants
	if req.Status != "" {
		status := domain.ItemStatus(req.Status)
		if !status.Valid() {
			respondError(c, http.StatusBadRequest, "unknown item status")
			return
		}
		item.Status = status
	}

	if err := h.services.Catalog.Update(c.Request.Context(), item); err != nil {
		respondServiceError(c, "update catalog item", err)
		return
	}

	respondOK(c, "updated", item)
}

// @Summary Delete catalog item
// @Tags Catalog
// @Accept  json
// @Produce  json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Security AdminAuth
// @Router /events/{id} [delete]
func (h *Handler) deleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "delete catalog item", err)
		return
	}

	respondOK(c, "deleted", nil)
}
