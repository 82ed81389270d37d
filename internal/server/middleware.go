package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	obscontext "github.com/workbenchhq/workbench/internal/observability/context"
	"github.com/workbenchhq/workbench/internal/orgcontext"
)

const currentUserKey = "workbench.current_user"

// AuthRequired authenticates the request from the access token cookie and
// stashes the current user on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := s.sessions.ReadAccessToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := orgcontext.WithUserID(c.Request.Context(), user.ID)
		if user.OrganizationID != nil {
			ctx = orgcontext.WithOrgID(ctx, *user.OrganizationID)
		}
		ctx = obscontext.WithActor(ctx, "user", user.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*authdomain.User)
	return user, ok && user != nil
}
