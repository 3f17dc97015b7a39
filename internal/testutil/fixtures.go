package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *gorm.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// Date returns a calendar date offset by days from today.
func Date(today time.Time, days int) *time.Time {
	d := models.DateOf(today).AddDate(0, 0, days)
	return &d
}

// CreateUser creates a test user with the given role
func (f *Fixtures) CreateUser(t *testing.T, role models.Role, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		ExternalID:  fmt.Sprintf("external-%d", f.counter),
		Email:       fmt.Sprintf("user%d@example.com", f.counter),
		DisplayName: fmt.Sprintf("Test User %d", f.counter),
		Role:        role,
	}
	for _, opt := range opts {
		opt(user)
	}

	require.NoError(t, f.db.Omit(clause.Associations).Create(user).Error)
	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithID fixes the user's ID, useful when ordering by ID matters
func WithID(id uuid.UUID) UserOption {
	return func(u *models.User) {
		u.ID = id
	}
}

// WithExternalID sets the identity-provider subject
func WithExternalID(externalID string) UserOption {
	return func(u *models.User) {
		u.ExternalID = externalID
	}
}

// CreateProject creates a test project
func (f *Fixtures) CreateProject(t *testing.T, leader *models.User, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Name:        fmt.Sprintf("Project %d", f.counter),
		Description: "Test Description",
		Status:      models.ProjectStatusActive,
	}
	if leader != nil {
		project.LeaderID = &leader.ID
	}
	for _, opt := range opts {
		opt(project)
	}

	require.NoError(t, f.db.Omit(clause.Associations).Create(project).Error)
	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithStatus sets the project's status
func WithStatus(status models.ProjectStatus) ProjectOption {
	return func(p *models.Project) {
		p.Status = status
	}
}

// WithDates sets the project's start and end dates
func WithDates(start, end *time.Time) ProjectOption {
	return func(p *models.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

// AddMember adds users to a project's membership
func (f *Fixtures) AddMember(t *testing.T, project *models.Project, users ...*models.User) {
	t.Helper()

	for _, u := range users {
		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    u.ID,
			JoinedAt:  time.Now(),
		}
		require.NoError(t, f.db.Omit(clause.Associations).Create(member).Error)
	}
}

// CreateTask creates a task in project with the given status, deadline and assignees
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, status models.TaskStatus, deadline *time.Time, assignees ...*models.User) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		Title:       fmt.Sprintf("Task %d", f.counter),
		Description: "Test Description",
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		Deadline:    deadline,
		ProjectID:   project.ID,
	}
	require.NoError(t, f.db.Omit(clause.Associations).Create(task).Error)

	for _, u := range assignees {
		require.NoError(t, f.db.Create(&models.TaskAssignee{TaskID: task.ID, UserID: u.ID}).Error)
	}
	return task
}
