package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/workbenchhq/workbench/internal/organization/domain"
	"github.com/workbenchhq/workbench/internal/organization/repository"
	"github.com/workbenchhq/workbench/pkg/db"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Organization{}, &domain.OrganizationAdmin{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(repository.NewRepository(dbConn), node)
}

func TestCreateSlugifiesName(t *testing.T) {
	svc := newTestService(t)

	org, err := svc.Create(context.Background(), domain.CreateOrganizationRequest{Name: "Acme Widgets Inc."})
	require.NoError(t, err)
	require.Equal(t, "Acme Widgets Inc.", org.Name)
	require.Equal(t, "acme-widgets-inc", org.Slug)
	require.NotEmpty(t, org.ID)
}

func TestCreateSlugConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateOrganizationRequest{Name: "acme"})
	require.ErrorIs(t, err, domain.ErrSlugConflict)
}

func TestCreateInvalidName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateOrganizationRequest{Name: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)

	id, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, created.Name, found.Name)
	require.Equal(t, created.Slug, found.Slug)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), snowflake.ID(999))
	require.ErrorIs(t, err, domain.ErrNotFound)
}
