package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to a status code and a client-safe message.
// Only validation errors echo their own text.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "meal not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "email already registered"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func bindError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorValidation, err)
}
