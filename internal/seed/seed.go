// Package seed bootstraps the default organization and admin user so a
// fresh install is usable out of the box.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/auth/password"
	orgdomain "github.com/workbenchhq/workbench/internal/organization/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultOrgName       = "Main"
	defaultOrgSlug       = "main"
	defaultAdminEmail    = "admin@workbench.local"
	defaultAdminPassword = "admin"
)

// EnsureDefaultOrgAndAdmin seeds the default organization and its admin
// user. Safe to call on every startup; existing records are left alone.
func EnsureDefaultOrgAndAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := ensureDefaultOrgTx(ctx, tx, node)
		if err != nil {
			return err
		}

		user, err := ensureAdminUserTx(ctx, tx, node, org.ID)
		if err != nil {
			return err
		}

		return ensureOrgAdminTx(ctx, tx, node, org.ID, user.ID)
	})
}

func ensureDefaultOrgTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*orgdomain.Organization, error) {
	var org orgdomain.Organization
	err := tx.WithContext(ctx).Where("slug = ?", defaultOrgSlug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	org = orgdomain.Organization{
		ID:        node.Generate(),
		Name:      defaultOrgName,
		Slug:      defaultOrgSlug,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func ensureAdminUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID) (*authdomain.User, error) {
	var user authdomain.User
	err := tx.WithContext(ctx).Where("LOWER(email) = LOWER(?)", defaultAdminEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:             node.Generate(),
		Email:          defaultAdminEmail,
		PasswordHash:   &hashed,
		FirstName:      "Workbench",
		LastName:       "Admin",
		OrganizationID: &orgID,
		IsOrgAdmin:     true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureOrgAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID, userID snowflake.ID) error {
	var admin orgdomain.OrganizationAdmin
	err := tx.WithContext(ctx).Where("org_id = ? AND user_id = ?", orgID, userID).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin = orgdomain.OrganizationAdmin{
		ID:        node.Generate(),
		OrgID:     orgID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&admin).Error
}
