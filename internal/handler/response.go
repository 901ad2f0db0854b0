package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fbauth/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Account status errors are checked before the generic authentication family.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrIntegrity), errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	case errors.Is(err, domain.ErrUserDisabled):
		return http.StatusForbidden, "USER_DISABLED", "user account is disabled"
	case errors.Is(err, domain.ErrUserLocked):
		return http.StatusForbidden, "USER_LOCKED", "user account is locked"
	case errors.Is(err, domain.ErrAccountExpired):
		return http.StatusForbidden, "ACCOUNT_EXPIRED", "user account has expired"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, "USER_NOT_FOUND", "no account is linked to this Facebook user"
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized, "AUTHENTICATION_FAILED", "authentication failed"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	if status >= 500 {
		log.Error("internal error", zap.Any("request_id", requestID), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Any("request_id", requestID), zap.String("code", code), zap.Error(err))
	}
	RespondError(c, status, code, msg)
}
