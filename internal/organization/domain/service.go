package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (*OrganizationResponse, error)
}

type CreateOrganizationRequest struct {
	Name string
}

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrNotFound     = errors.New("organization not found")
	ErrSlugConflict = errors.New("organization slug already exists")
)
