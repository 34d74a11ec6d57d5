package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/auth"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/dmitrijs2005/dailydiet/internal/server/telemetry"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     *string `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
}

type sessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}

	sess, err := s.accounts.Register(c.Request.Context(), *req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if err := s.setSessionCookie(c, sess); err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.SessionIssued(telemetry.SessionRegister)
	s.logger.Info(c.Request.Context(), "Registered", "email", req.Email)
	c.Status(http.StatusCreated)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, bindError(err))
		return
	}

	sess, err := s.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.metrics.AuthenticationFailed()
			s.logger.Warn(c.Request.Context(), "authentication failed", "email", req.Email, "reason", err.Error())
		}
		s.writeError(c, err)
		return
	}

	if err := s.setSessionCookie(c, sess); err != nil {
		s.writeError(c, err)
		return
	}
	s.metrics.SessionIssued(telemetry.SessionLogin)
	c.Status(http.StatusOK)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.accounts.Logout(c.Request.Context(), currentAccount(c)); err != nil {
		s.writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, common.SessionCookiePath, "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) setSessionCookie(c *gin.Context, sess *services.Session) error {
	value, err := auth.GenerateToken(sess.Token, s.jwtSecret, sess.MaxAge)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, value, int(sess.MaxAge/time.Second), common.SessionCookiePath, "", false, true)
	return nil
}
