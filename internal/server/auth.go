package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	obslogger "github.com/workbenchhq/workbench/internal/observability/logger"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// Login authenticates with email and password and establishes the cookie
// session: an access token cookie and a refresh token cookie.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	result, err := s.authsvc.Login(ctx, authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if s.metrics != nil && errors.Is(err, authdomain.ErrInvalidCredentials) {
			s.metrics.RecordLoginFailure(ctx)
		}
		AbortWithError(c, err)
		return
	}

	s.sessions.SetAccess(c, result.Tokens.AccessToken, result.Tokens.AccessExpiresAt)
	s.sessions.SetRefresh(c, result.Tokens.RefreshToken, result.Tokens.RefreshExpiresAt)

	resp := loginResponse{
		Email:     result.User.Email,
		FirstName: result.User.FirstName,
		LastName:  result.User.LastName,
	}
	if result.User.OrganizationID != nil {
		org, err := s.orgSvc.GetByID(ctx, *result.User.OrganizationID)
		if err != nil {
			// The session is valid even if the org lookup fails; log and
			// return the profile without the organization name.
			obslogger.WithContext(ctx, s.log).Warn("organization lookup failed on login",
				zap.String("user_id", result.User.ID.String()),
				zap.Error(err),
			)
		} else {
			resp.OrganizationName = org.Name
		}
	}

	if s.metrics != nil {
		s.metrics.RecordLogin(ctx)
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh mints a new access token from the refresh token cookie. The
// refresh cookie itself stays as issued at login.
func (s *Server) Refresh(c *gin.Context) {
	raw, ok := s.sessions.ReadRefreshToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	result, err := s.authsvc.Refresh(ctx, raw)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.SetAccess(c, result.AccessToken, result.AccessExpiresAt)
	if s.metrics != nil {
		s.metrics.RecordTokenRefresh(ctx)
	}
	c.JSON(http.StatusOK, gin.H{"message": "token refreshed"})
}

// Logout clears the session cookies and blacklists the refresh token so it
// can never mint another access token. The cookies are cleared no matter
// what: a client that calls logout is logged out locally even when the
// server-side revoke cannot complete.
func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)

	raw, ok := s.sessions.ReadRefreshToken(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
		return
	}

	ctx := c.Request.Context()
	err := s.authsvc.Revoke(ctx, raw)
	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.RecordTokenRevoke(ctx)
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	case errors.Is(err, authdomain.ErrTokenMalformed), errors.Is(err, authdomain.ErrTokenExpired):
		AbortWithError(c, invalidRequestError())
	case errors.Is(err, authdomain.ErrTokenNotFound):
		// Already blacklisted or never issued. Logout is idempotent.
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	default:
		obslogger.WithContext(ctx, s.log).Error("refresh token revoke failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"message": "logged out",
			"error":   "token could not be revoked",
		})
	}
}
