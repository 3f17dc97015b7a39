package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/testutil"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*repository.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return repository.NewStore(db), testutil.NewFixtures(db)
}

func TestTaskRepository_CountFilters(t *testing.T) {
	store, fx := setupStore(t)
	today := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

	leader := fx.CreateUser(t, models.RoleLeader)
	m1 := fx.CreateUser(t, models.RoleMember)
	m2 := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader)
	other := fx.CreateProject(t, leader)

	fx.CreateTask(t, project, models.TaskStatusDone, testutil.Date(today, -3), m1, m2)
	fx.CreateTask(t, project, models.TaskStatusTodo, testutil.Date(today, -1), m1)
	fx.CreateTask(t, project, models.TaskStatusInProgress, testutil.Date(today, 0), m2)
	fx.CreateTask(t, other, models.TaskStatusTodo, nil, m1)

	done := models.TaskStatusDone

	cases := []struct {
		name   string
		filter repository.TaskFilter
		want   int64
	}{
		{"project", repository.TaskFilter{ProjectID: &project.ID}, 3},
		{"project done", repository.TaskFilter{ProjectID: &project.ID, Status: &done}, 1},
		{"project overdue", repository.TaskFilter{ProjectID: &project.ID, OverdueAsOf: &today}, 1},
		{"assignee", repository.TaskFilter{AssigneeID: &m1.ID}, 3},
		{"assignee in project", repository.TaskFilter{AssigneeID: &m2.ID, ProjectID: &project.ID}, 2},
		{"assignee overdue", repository.TaskFilter{AssigneeID: &m2.ID, OverdueAsOf: &today}, 0},
		{"project set", repository.TaskFilter{ProjectIDs: []uuid.UUID{other.ID}}, 1},
		{"empty project set", repository.TaskFilter{ProjectIDs: []uuid.UUID{}}, 0},
		{"everything", repository.TaskFilter{}, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.Tasks.Count(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTaskRepository_ListPreloadsAssignees(t *testing.T) {
	store, fx := setupStore(t)

	leader := fx.CreateUser(t, models.RoleLeader)
	m1 := fx.CreateUser(t, models.RoleMember)
	m2 := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader)
	task := fx.CreateTask(t, project, models.TaskStatusTodo, nil, m1, m2)

	tasks, err := store.Tasks.List(repository.TaskFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Len(t, tasks[0].Assignees, 2)
	assert.True(t, tasks[0].IsAssignedTo(m1.ID))
	assert.True(t, tasks[0].IsAssignedTo(m2.ID))
}

func TestTaskRepository_ReplaceAssignees(t *testing.T) {
	store, fx := setupStore(t)

	leader := fx.CreateUser(t, models.RoleLeader)
	m1 := fx.CreateUser(t, models.RoleMember)
	m2 := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader)
	task := fx.CreateTask(t, project, models.TaskStatusTodo, nil, m1)

	require.NoError(t, store.Tasks.ReplaceAssignees(task.ID, []uuid.UUID{m2.ID}))

	loaded, err := store.Tasks.FindByID(task.ID, "Assignees")
	require.NoError(t, err)
	require.Len(t, loaded.Assignees, 1)
	assert.Equal(t, m2.ID, loaded.Assignees[0].ID)

	require.NoError(t, store.Tasks.ReplaceAssignees(task.ID, nil))
	loaded, err = store.Tasks.FindByID(task.ID, "Assignees")
	require.NoError(t, err)
	assert.Empty(t, loaded.Assignees)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	store, fx := setupStore(t)

	leader := fx.CreateUser(t, models.RoleLeader)
	member := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader)
	kept := fx.CreateProject(t, leader)
	fx.AddMember(t, project, member)
	fx.AddMember(t, kept, member)
	fx.CreateTask(t, project, models.TaskStatusTodo, nil, member)
	keptTask := fx.CreateTask(t, kept, models.TaskStatusTodo, nil, member)

	require.NoError(t, store.Projects.Delete(project.ID))

	_, err := store.Projects.FindByID(project.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	count, err := store.Tasks.Count(repository.TaskFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	assert.Zero(t, count)

	exists, err := store.Memberships.Exists(project.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// the other project is untouched
	loaded, err := store.Tasks.FindByID(keptTask.ID, "Assignees")
	require.NoError(t, err)
	assert.Len(t, loaded.Assignees, 1)
	exists, err = store.Memberships.Exists(kept.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	store, fx := setupStore(t)

	l1 := fx.CreateUser(t, models.RoleLeader)
	l2 := fx.CreateUser(t, models.RoleLeader)
	p1 := fx.CreateProject(t, l1)
	p2 := fx.CreateProject(t, l2)

	all, err := store.Projects.List(repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	led, err := store.Projects.List(repository.ProjectFilter{LeaderID: &l1.ID})
	require.NoError(t, err)
	require.Len(t, led, 1)
	assert.Equal(t, p1.ID, led[0].ID)
	require.NotNil(t, led[0].Leader)
	assert.Equal(t, l1.ID, led[0].Leader.ID)

	byID, err := store.Projects.List(repository.ProjectFilter{IDs: []uuid.UUID{p2.ID}})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, p2.ID, byID[0].ID)

	none, err := store.Projects.List(repository.ProjectFilter{IDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store, fx := setupStore(t)
	leader := fx.CreateUser(t, models.RoleLeader)

	boom := errors.New("boom")
	err := store.Transaction(func(tx *repository.Store) error {
		if err := tx.Projects.Create(&models.Project{Name: "Doomed", LeaderID: &leader.ID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	projects, err := store.Projects.List(repository.ProjectFilter{})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestUserRepository_Lookups(t *testing.T) {
	store, fx := setupStore(t)
	user := fx.CreateUser(t, models.RoleMember, testutil.WithExternalID("firebase-uid-1"))

	found, err := store.Users.FindByExternalID("firebase-uid-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = store.Users.FindByEmail(user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	users, err := store.Users.FindByIDs([]uuid.UUID{user.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = store.Users.FindByID(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	store, fx := setupStore(t)
	existing := fx.CreateUser(t, models.RoleMember)

	err := store.Users.Create(&models.User{
		ExternalID:  "another-uid",
		Email:       existing.Email,
		DisplayName: "Copy",
		Role:        models.RoleMember,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMembershipRepository(t *testing.T) {
	store, fx := setupStore(t)

	leader := fx.CreateUser(t, models.RoleLeader)
	member := fx.CreateUser(t, models.RoleMember)
	project := fx.CreateProject(t, leader)

	require.NoError(t, store.Memberships.Create(&models.ProjectMember{
		ProjectID: project.ID,
		UserID:    member.ID,
		JoinedAt:  time.Now(),
	}))

	members, err := store.Memberships.ListByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, member.Email, members[0].User.Email)

	count, err := store.Memberships.CountByProject(project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	byUser, err := store.Memberships.ListByUser(member.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	// duplicate membership violates the composite key
	err = store.Memberships.Create(&models.ProjectMember{ProjectID: project.ID, UserID: member.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, store.Memberships.Delete(project.ID, member.ID))
	exists, err := store.Memberships.Exists(project.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
