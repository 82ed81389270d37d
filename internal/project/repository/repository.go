package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/project/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
