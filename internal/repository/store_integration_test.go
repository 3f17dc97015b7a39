//go:build integration

package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/testutil"
)

func TestStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	db := testutil.SetupPostgresDB(t)
	store := repository.NewStore(db)
	fx := testutil.NewFixtures(db)
	today := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	leader := fx.CreateUser(t, models.RoleLeader)
	m1 := fx.CreateUser(t, models.RoleMember)
	m2 := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader, testutil.WithDates(testutil.Date(today, -10), testutil.Date(today, 10)))
	fx.AddMember(t, project, m1, m2)

	fx.CreateTask(t, project, models.TaskStatusDone, testutil.Date(today, -5), m1)
	fx.CreateTask(t, project, models.TaskStatusTodo, testutil.Date(today, -1), m1, m2)
	fx.CreateTask(t, project, models.TaskStatusInProgress, nil, m2)

	t.Run("overdue uses date comparison", func(t *testing.T) {
		count, err := store.Tasks.Count(repository.TaskFilter{ProjectID: &project.ID, OverdueAsOf: &today})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("assignee filter", func(t *testing.T) {
		count, err := store.Tasks.Count(repository.TaskFilter{AssigneeID: &m2.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("dates round trip", func(t *testing.T) {
		loaded, err := store.Projects.FindByID(project.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.StartDate)
		assert.Equal(t, models.DateOf(*testutil.Date(today, -10)), models.DateOf(*loaded.StartDate))
		assert.True(t, loaded.IsActiveOn(today))
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, store.Projects.Delete(project.ID))

		count, err := store.Tasks.Count(repository.TaskFilter{AssigneeID: &m1.ID})
		require.NoError(t, err)
		assert.Zero(t, count)

		members, err := store.Memberships.ListByProject(project.ID)
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}
