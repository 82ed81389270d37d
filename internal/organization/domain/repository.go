package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, org Organization) error
	FindByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	AddAdmin(ctx context.Context, admin OrganizationAdmin) error
	IsAdmin(ctx context.Context, orgID, userID snowflake.ID) (bool, error)
}
