package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Project, error)

	// List retrieves projects matching the filter, leaders preloaded
	List(filter ProjectFilter) ([]models.Project, error)

	// Update saves the project's own columns
	Update(project *models.Project) error

	// Delete removes a project together with its memberships, tasks and assignments
	Delete(id uuid.UUID) error
}

// ProjectFilter holds filtering options for listing projects.
// A non-nil but empty IDs matches nothing.
type ProjectFilter struct {
	LeaderID *uuid.UUID
	IDs      []uuid.UUID
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task without touching its assignees
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter with assignees preloaded
	List(filter TaskFilter) ([]models.Task, error)

	// Count counts tasks matching the filter
	Count(filter TaskFilter) (int64, error)

	// Update saves the task's own columns
	Update(task *models.Task) error

	// Delete removes a task and its assignments
	Delete(id uuid.UUID) error

	// ReplaceAssignees replaces the full assignee set of a task
	ReplaceAssignees(taskID uuid.UUID, userIDs []uuid.UUID) error
}

// TaskFilter holds filtering options for listing and counting tasks.
// A non-nil but empty ProjectIDs matches nothing.
type TaskFilter struct {
	ProjectID  *uuid.UUID
	ProjectIDs []uuid.UUID
	AssigneeID *uuid.UUID
	Status     *models.TaskStatus
	// OverdueAsOf keeps only tasks with a deadline before this date that are not done.
	OverdueAsOf *time.Time
}

// MembershipRepository defines the interface for project membership data access
type MembershipRepository interface {
	// Create adds a membership row
	Create(member *models.ProjectMember) error

	// Delete removes a membership row
	Delete(projectID, userID uuid.UUID) error

	// Find finds a specific membership
	Find(projectID, userID uuid.UUID) (*models.ProjectMember, error)

	// Exists reports whether the user is a member of the project
	Exists(projectID, userID uuid.UUID) (bool, error)

	// ListByProject lists a project's memberships with users preloaded
	ListByProject(projectID uuid.UUID) ([]models.ProjectMember, error)

	// ListByUser lists a user's memberships
	ListByUser(userID uuid.UUID) ([]models.ProjectMember, error)

	// CountByProject counts a project's members
	CountByProject(projectID uuid.UUID) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update saves a user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByIDs finds every user whose ID is listed; missing IDs are simply absent
	FindByIDs(ids []uuid.UUID) ([]models.User, error)

	// FindByExternalID finds a user by identity-provider subject
	FindByExternalID(externalID string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List lists all users
	List() ([]models.User, error)

	// Count counts all users
	Count() (int64, error)
}
