package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	projectdomain "github.com/workbenchhq/workbench/internal/project/domain"
)

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
	// Organization is accepted for wire compatibility but ignored; ownership
	// always comes from the authenticated user.
	Organization string `json:"organization"`
}

// ListProjects returns the projects owned by the caller's organization,
// oldest first. A user without an organization sees an empty list.
func (s *Server) ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var orgID snowflake.ID
	if user.OrganizationID != nil {
		orgID = *user.OrganizationID
	}

	projects, err := s.projectSvc.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a project owned by the caller's organization.
func (s *Server) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if user.OrganizationID == nil {
		AbortWithError(c, projectdomain.ErrNoOrganization)
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	created, err := s.projectSvc.Create(ctx, *user.OrganizationID, projectdomain.CreateProjectRequest{
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordProjectCreated(ctx, user.OrganizationID.String())
	}
	c.JSON(http.StatusCreated, created)
}
