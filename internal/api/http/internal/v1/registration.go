package v1

import (
	"net/http"

	"github.com/communityhub/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// candidateRequest is the participant detail block shared by the free
// registration and checkout endpoints.
type candidateRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required,phonenumber"`
	Age            int    `json:"age" binding:"required,min=1"`
	Gender         string `json:"gender" binding:"required,oneof=male female"`
	Education      string `json:"education" binding:"max=200"`
	CommunityOptIn bool   `json:"community_opt_in"`
}

func (r candidateRequest) toDomain() domain.Candidate {
	return domain.Candidate{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Age:            r.Age,
		Gender:         domain.Gender(r.Gender),
		Education:      r.Education,
		CommunityOptIn: r.CommunityOptIn,
	}
}

// @Summary Register for a free item
// @Tags Registrations
// @Description Enroll a participant in a free event, course or competition. Paid items must go through checkout.
// @Accept  json
// @Produce  json
// @Param id path string true "Item ID (UUID)"
// @Param input body candidateRequest true "Participant details"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /events/{id}/register [post]
func (h *Handler) registerFree(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	reg, err := h.services.Registrations.Register(c.Request.Context(), id, req.toDomain())
	if err != nil {
		respondServiceError(c, "free registration", err)
		return
	}

	respondCreated(c, "registration confirmed", reg)
}
