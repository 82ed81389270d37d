package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/organization/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, org domain.Organization) error {
	return r.db.WithContext(ctx).Create(&org).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) AddAdmin(ctx context.Context, admin domain.OrganizationAdmin) error {
	return r.db.WithContext(ctx).Create(&admin).Error
}

func (r *repository) IsAdmin(ctx context.Context, orgID, userID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.OrganizationAdmin{}).
		Where("org_id = ? AND user_id = ?", orgID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
