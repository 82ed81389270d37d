package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/workbenchhq/workbench/internal/organization/domain"
	"github.com/workbenchhq/workbench/pkg/db"
	"gorm.io/datatypes"
)

const maxNameLength = 255

type service struct {
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrganizationRequest) (*domain.OrganizationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	org := domain.Organization{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugConflict
		}
		return nil, err
	}

	return &domain.OrganizationResponse{
		ID:   org.ID.String(),
		Name: org.Name,
		Slug: org.Slug,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.OrganizationResponse, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.OrganizationResponse{
		ID:   org.ID.String(),
		Name: org.Name,
		Slug: org.Slug,
	}, nil
}
