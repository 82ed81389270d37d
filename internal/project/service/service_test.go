package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"github.com/workbenchhq/workbench/internal/project/domain"
	"github.com/workbenchhq/workbench/internal/project/repository"
	"github.com/workbenchhq/workbench/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Project{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(zap.NewNop(), repository.NewRepository(dbConn), node)
}

func TestCreateAndListScopedToOrganization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	orgA := snowflake.ID(1)
	orgB := snowflake.ID(2)

	_, err := svc.Create(ctx, orgA, domain.CreateProjectRequest{Name: "alpha"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, orgA, domain.CreateProjectRequest{Name: "beta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, orgB, domain.CreateProjectRequest{Name: "gamma"})
	require.NoError(t, err)

	listA, err := svc.ListByOrganization(ctx, orgA)
	require.NoError(t, err)
	require.Len(t, listA, 2)
	require.Equal(t, "alpha", listA[0].Name)
	require.Equal(t, "beta", listA[1].Name)
	require.Equal(t, orgA.String(), listA[0].Organization)

	listB, err := svc.ListByOrganization(ctx, orgB)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, "gamma", listB[0].Name)
}

func TestListOrderedOldestFirst(t *testing.T) {
	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Project{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := NewService(zap.NewNop(), repository.NewRepository(dbConn), node)

	orgID := snowflake.ID(1)
	base := time.Now().UTC().Add(-time.Hour)
	// Insert out of creation order to make sure the query sorts.
	rows := []struct {
		name   string
		offset time.Duration
	}{
		{"third", 30 * time.Minute},
		{"first", 0},
		{"second", 15 * time.Minute},
	}
	for _, row := range rows {
		require.NoError(t, dbConn.Create(&domain.Project{
			ID:             node.Generate(),
			Name:           row.name,
			OrganizationID: orgID,
			CreatedAt:      base.Add(row.offset),
			UpdatedAt:      base.Add(row.offset),
		}).Error)
	}

	list, err := svc.ListByOrganization(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "first", list[0].Name)
	require.Equal(t, "second", list[1].Name)
	require.Equal(t, "third", list[2].Name)
}

func TestListWithoutOrganizationIsEmpty(t *testing.T) {
	svc := newTestService(t)

	list, err := svc.ListByOrganization(context.Background(), 0)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestCreateWithoutOrganizationFails(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), 0, domain.CreateProjectRequest{Name: "alpha"})
	require.ErrorIs(t, err, domain.ErrNoOrganization)
}

func TestCreateInvalidName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, snowflake.ID(1), domain.CreateProjectRequest{Name: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(ctx, snowflake.ID(1), domain.CreateProjectRequest{Name: string(long)})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateTrimsName(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), snowflake.ID(1), domain.CreateProjectRequest{Name: "  alpha  "})
	require.NoError(t, err)
	require.Equal(t, "alpha", created.Name)
}
