package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obslogger "github.com/workbenchhq/workbench/internal/observability/logger"
	"go.uber.org/zap"
)

type userOrganization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type userResponse struct {
	Email        string            `json:"email"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Organization *userOrganization `json:"organization"`
}

// CurrentUser returns the authenticated user's profile, including the
// organization they belong to, if any.
func (s *Server) CurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp := userResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.OrganizationID != nil {
		ctx := c.Request.Context()
		org, err := s.orgSvc.GetByID(ctx, *user.OrganizationID)
		if err != nil {
			obslogger.WithContext(ctx, s.log).Warn("organization lookup failed",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		} else {
			resp.Organization = &userOrganization{ID: org.ID, Name: org.Name}
		}
	}

	c.JSON(http.StatusOK, resp)
}
