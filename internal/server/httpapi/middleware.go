package httpapi

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/auth"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/gin-gonic/gin"
)

const accountKey = "account"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// sessionRequired resolves the session cookie to an account and stores it in
// the gin context for the handler.
func (s *Server) sessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(common.SessionCookieName)
		if err != nil || cookie == "" {
			s.writeError(c, common.ErrorUnauthorized)
			return
		}

		token, err := auth.GetSessionIDFromToken(cookie, s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "rejected session cookie", "error", err)
			s.writeError(c, err)
			return
		}

		account, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			s.writeError(c, err)
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// currentAccount is only valid behind sessionRequired.
func currentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		panic(errors.New("account missing from request context"))
	}
	return v.(*models.Account)
}
