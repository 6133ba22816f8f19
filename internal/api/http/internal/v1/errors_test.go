package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/communityhub/backend/internal/domain"
	"github.com/communityhub/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"sold out", domain.ErrCapacityFull, http.StatusConflict, "Event full"},
		{"duplicate", domain.ErrDuplicateEntry, http.StatusConflict, "already exists"},
		{"bad signature", service.ErrInvalidSignature, http.StatusBadRequest, "payment verification failed"},
		{"not settled", service.ErrPaymentNotSettled, http.StatusPaymentRequired, "payment is not completed"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, "test op", tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}
