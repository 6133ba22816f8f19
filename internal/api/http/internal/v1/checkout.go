package v1

import (
	"net/http"

	"github.com/communityhub/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initCheckoutRoutes(api *gin.RouterGroup) {
	checkout := api.Group("/checkout")
	{
		checkout.POST("/order", h.createCheckoutOrder)
		checkout.POST("/verify", h.verifyCheckout)
		checkout.POST("/cancel", h.cancelCheckout)
	}
}

type createOrderRequest struct {
	ItemID    string           `json:"item_id" binding:"required,uuid"`
	Candidate candidateRequest `json:"candidate" binding:"required"`
}

// @Summary Create checkout order
// @Tags Checkout
// @Description Validate the participant and issue a gateway order for a paid item. The amount always comes from the item's stored fee.
// @Accept  json
// @Produce  json
// @Param input body createOrderRequest true "Item and participant details"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Failure 502 {object} Response
// @Router /checkout/order [post]
func (h *Handler) createCheckoutOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return
	}

	order, err := h.services.Checkout.CreateOrder(c.Request.Context(), itemID, req.Candidate.toDomain())
	if err != nil {
		respondServiceError(c, "create checkout order", err)
		return
	}

	respondCreated(c, "order created", order)
}

type verifyRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// @Summary Verify checkout payment
// @Tags Checkout
// @Description Verify the gateway callback signature, re-check the payment at the gateway and confirm the registration. Idempotent.
// @Accept  json
// @Produce  json
// @Param input body verifyRequest true "Gateway callback fields"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 402 {object} Response
// @Failure 409 {object} Response
// @Router /checkout/verify [post]
func (h *Handler) verifyCheckout(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	reg, err := h.services.Checkout.Verify(c.Request.Context(), service.VerifyInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		respondServiceError(c, "verify checkout", err)
		return
	}

	respondOK(c, "payment verified", reg)
}

type cancelRequest struct {
	GatewayOrderID string `json:"gateway_order_id" binding:"required"`
}

// @Summary Cancel checkout attempt
// @Tags Checkout
// @Description Record a dismissed checkout overlay. The order is kept for reconciliation.
// @Accept  json
// @Produce  json
// @Param input body cancelRequest true "Gateway order id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /checkout/cancel [post]
func (h *Handler) cancelCheckout(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Checkout.Cancel(c.Request.Context(), req.GatewayOrderID); err != nil {
		respondServiceError(c, "cancel checkout", err)
		return
	}

	respondOK(c, "checkout cancelled", nil)
}
