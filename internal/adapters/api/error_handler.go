package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error onto its HTTP status code
func statusFor(err error) int {
	if errors.IsGeolocationError(err) {
		return http.StatusBadRequest
	}

	switch errors.TypeOf(err) {
	case errors.ErrorTypeInvalidInput, errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case errors.ErrorTypeCityNotFound, errors.ErrorTypeNoLocationFound, errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the single user-facing message for err
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	c.JSON(statusFor(err), ErrorResponse{Error: errors.UserMessage(err)})
}
