package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// ListByOrganization returns the projects owned by the organization,
	// oldest first.
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]ProjectResponse, error)
	// Create persists a project owned by the organization.
	Create(ctx context.Context, orgID snowflake.ID, req CreateProjectRequest) (*ProjectResponse, error)
}

type Repository interface {
	Create(ctx context.Context, project *Project) error
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Project, error)
}

type CreateProjectRequest struct {
	Name string
}

// ProjectResponse mirrors the wire shape: name plus the owning organization id.
type ProjectResponse struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrNoOrganization = errors.New("caller has no organization")
)
