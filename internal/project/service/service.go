package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/project/domain"
	"go.uber.org/zap"
)

const maxNameLength = 255

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("project.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.ProjectResponse, error) {
	if orgID == 0 {
		return []domain.ProjectResponse{}, nil
	}

	projects, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp = append(resp, domain.ProjectResponse{
			Name:         project.Name,
			Organization: project.OrganizationID.String(),
		})
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, orgID snowflake.ID, req domain.CreateProjectRequest) (*domain.ProjectResponse, error) {
	if orgID == 0 {
		return nil, domain.ErrNoOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:             s.genID.Generate(),
		Name:           name,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.log.Error("create project failed",
			zap.String("org_id", orgID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.ProjectResponse{
		Name:         project.Name,
		Organization: project.OrganizationID.String(),
	}, nil
}
