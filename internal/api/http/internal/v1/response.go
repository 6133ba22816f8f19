package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// envelope is the wire shape every endpoint answers with. The public site
// was built against it, so it stays stable even as handlers change.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
} // @name Response

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

// pagination wraps list payloads with the paging echo the admin tables
// consume.
type pagination struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		ferr := verr[0]
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("%s: %s", ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())))
		return
	}
	respondError(c, http.StatusBadRequest, "invalid request body")
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %v", value)
	case "max":
		return fmt.Sprintf("must be at most %v", value)
	case "phonenumber":
		return "must be a 10-digit mobile number"
	case "uuid":
		return "must be a valid id"
	}
	return tag
}
