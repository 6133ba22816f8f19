package v1

import (
	"errors"
	"net/http"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/payment"
	"github.com/communityhub/backend/internal/service"
	"github.com/communityhub/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError translates service-layer failures into the envelope.
// Unknown errors are logged with context and hidden behind a generic 500.
func respondServiceError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrCapacityFull):
		respondError(c, http.StatusConflict, "Event full")
	case errors.Is(err, domain.ErrDuplicateEntry):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrBadInput),
		errors.Is(err, service.ErrInvalidCandidate),
		errors.Is(err, service.ErrItemFree),
		errors.Is(err, service.ErrItemNotFree),
		errors.Is(err, service.ErrUnsupportedResource):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrItemNotOpen):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		respondError(c, http.StatusBadRequest, "payment verification failed")
	case errors.Is(err, service.ErrPaymentNotSettled):
		respondError(c, http.StatusPaymentRequired, "payment is not completed")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		var gwErr *payment.Error
		if errors.As(err, &gwErr) {
			logger.Error(op+" gateway error", zap.String("code", string(gwErr.Code)), zap.Error(err))
			if gwErr.Code == payment.ErrCodeConfiguration {
				respondError(c, http.StatusInternalServerError, "payment gateway misconfigured")
			} else {
				respondError(c, http.StatusBadGateway, "payment gateway unavailable")
			}
			return
		}

		logger.Error(op+" failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
