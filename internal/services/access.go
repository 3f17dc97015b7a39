package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/policy"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// findProject loads a project, reporting ErrProjectNotFound when it does not exist.
func findProject(store *repository.Store, id uuid.UUID, preload ...string) (*models.Project, error) {
	project, err := store.Projects.FindByID(id, preload...)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "project")
	}
	return project, nil
}

func findUser(store *repository.Store, id uuid.UUID) (*models.User, error) {
	user, err := store.Users.FindByID(id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	return user, nil
}

func findTask(store *repository.Store, id uuid.UUID, preload ...string) (*models.Task, error) {
	task, err := store.Tasks.FindByID(id, preload...)
	if err != nil {
		return nil, lookupError(err, ErrTaskNotFound, "task")
	}
	return task, nil
}

func requireManager(subject *models.User, project *models.Project) error {
	if !policy.CanManageProject(subject, project) {
		return ErrNotProjectManager
	}
	return nil
}

func requireViewer(store *repository.Store, subject *models.User, project *models.Project) error {
	if policy.CanManageProject(subject, project) {
		return nil
	}
	if subject == nil {
		return ErrNotProjectViewer
	}

	isMember, err := store.Memberships.Exists(project.ID, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to verify project membership: %w", err)
	}
	if !policy.CanViewProject(subject, project, isMember) {
		return ErrNotProjectViewer
	}
	return nil
}
