package v1

import (
	"encoding/json"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/repository"
	"github.com/communityhub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.adminLogin)

		authed := admin.Group("", h.adminIdentityMiddleware)
		{
			authed.GET("/stats", h.adminStats)
			authed.GET("/registrations", h.listRegistrations)
			authed.GET("/registrations/stats", h.registrationStats)
			authed.PATCH("/registrations/:id/status", h.setRegistrationStatus)
			authed.POST("/import/:resource", h.importLegacy)
		}
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// @Summary Admin login
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /admin/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	result, err := h.services.Admin.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, "admin login", err)
		return
	}

	respondOK(c, "logged in", result)
}

// @Summary Site statistics
// @Tags Admin
// @Produce  json
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /admin/stats [get]
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.services.Admin.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, "admin stats", err)
		return
	}

	respondOK(c, "ok", stats)
}

func registrationFilters(c *gin.Context) *repository.RegistrationFilters {
	filters := &repository.RegistrationFilters{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	if t := domain.ItemType(c.Query("item_type")); t.Valid() {
		filters.ItemType = &t
	}
	if id, err := uuid.Parse(c.Query("item_id")); err == nil {
		filters.ItemID = &id
	}
	if s := domain.RegistrationStatus(c.Query("status")); s.Valid() {
		filters.Status = &s
	}
	if p := domain.PaymentStatus(c.Query("payment_status")); p.Valid() {
		filters.PaymentStatus = &p
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	return filters
}

// @Summary List registrations
// @Tags Admin
// @Produce  json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param item_type query string false "event, course or competition"
// @Param item_id query string false "Item ID (UUID)"
// @Param status query string false "registered, cancelled or completed"
// @Param payment_status query string false "pending, authorized, captured, failed, refunded or paid"
// @Param search query string false "Free-text name/email search"
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /admin/registrations [get]
func (h *Handler) listRegistrations(c *gin.Context) {
	page, limit := pageParams(c)

	regs, total, err := h.services.Registrations.GetAll(c.Request.Context(), page, limit, registrationFilters(c))
	if err != nil {
		respondServiceError(c, "list registrations", err)
		return
	}

	respondOK(c, "ok", pagination{Items: regs, Total: total, Page: page, Limit: limit})
}

// @Summary Registration breakdowns
// @Tags Admin
// @Description Counts grouped by status, item type and item under the current filters
// @Produce  json
// @Success 200 {object} Response
// @Security AdminAuth
// @Router /admin/registrations/stats [get]
func (h *Handler) registrationStats(c *gin.Context) {
	stats, err := h.services.Registrations.GetFilterStats(c.Request.Context(), registrationFilters(c))
	if err != nil {
		respondServiceError(c, "registration stats", err)
		return
	}

	respondOK(c, "ok", stats)
}

type registrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=registered cancelled completed"`
}

// @Summary Update registration status
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "Registration ID (UUID)"
// @Param input body registrationStatusRequest true "New status"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Security AdminAuth
// @Router /admin/registrations/{id}/status [patch]
func (h *Handler) setRegistrationStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req registrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Registrations.SetStatus(c.Request.Context(), id, domain.RegistrationStatus(req.Status)); err != nil {
		respondServiceError(c, "set registration status", err)
		return
	}

	respondOK(c, "updated", nil)
}

type importRequest struct {
	Records []map[string]json.RawMessage `json:"records" binding:"required"`
}

type importResponse struct {
	Received int `json:"received"`
	Imported int `json:"imported"`
}

// @Summary Import legacy records
// @Tags Admin
// @Description Ingest records exported from the previous backend. Accepts plain JSON and key-typed attribute records.
// @Accept  json
// @Produce  json
// @Param resource path string true "Resource name, currently only registrations"
// @Param input body importRequest true "Exported records"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Security AdminAuth
// @Router /admin/import/{resource} [post]
func (h *Handler) importLegacy(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if adminID, err := h.getAdminUUID(c); err == nil {
		logger.Info("legacy import requested",
			zap.String("admin_id", adminID.String()),
			zap.String("resource", c.Param("resource")),
			zap.Int("records", len(req.Records)))
	}

	imported, err := h.services.Admin.ImportLegacy(c.Request.Context(), c.Param("resource"), req.Records)
	if err != nil {
		respondServiceError(c, "legacy import", err)
		return
	}

	respondOK(c, "import finished", importResponse{Received: len(req.Records), Imported: imported})
}
