package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/policy"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService provides business logic for projects and their memberships.
type ProjectService struct {
	store *repository.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store *repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ProjectDetail is a project with its leader loaded and its sizes counted.
type ProjectDetail struct {
	*models.Project
	MemberCount int64
	TaskCount   int64
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	LeaderID    *uuid.UUID
}

// UpdateProjectInput holds a partial update. Nil fields are left unchanged;
// the Clear flags null out optional fields.
type UpdateProjectInput struct {
	Name           *string
	Description    *string
	Status         *string
	StartDate      *time.Time
	ClearStartDate bool
	EndDate        *time.Time
	ClearEndDate   bool
	LeaderID       *uuid.UUID
	ClearLeader    bool
}

// ListForSubject returns every project for admins, otherwise the projects the
// subject leads or belongs to.
func (s *ProjectService) ListForSubject(subject *models.User) ([]ProjectDetail, error) {
	if subject == nil {
		return nil, ErrUnauthenticated
	}

	filter := repository.ProjectFilter{}
	if !subject.IsAdmin() {
		led, err := s.store.Projects.List(repository.ProjectFilter{LeaderID: &subject.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to list led projects: %w", err)
		}
		memberships, err := s.store.Memberships.ListByUser(subject.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list memberships: %w", err)
		}

		seen := make(map[uuid.UUID]struct{}, len(led)+len(memberships))
		ids := make([]uuid.UUID, 0, len(led)+len(memberships))
		for _, p := range led {
			seen[p.ID] = struct{}{}
			ids = append(ids, p.ID)
		}
		for _, m := range memberships {
			if _, dup := seen[m.ProjectID]; dup {
				continue
			}
			seen[m.ProjectID] = struct{}{}
			ids = append(ids, m.ProjectID)
		}
		filter.IDs = ids
	}

	projects, err := s.store.Projects.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	details := make([]ProjectDetail, 0, len(projects))
	for i := range projects {
		detail, err := s.detail(&projects[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Get returns a project visible to the subject.
func (s *ProjectService) Get(subject *models.User, id uuid.UUID) (*ProjectDetail, error) {
	project, err := findProject(s.store, id, "Leader")
	if err != nil {
		return nil, err
	}
	if err := requireViewer(s.store, subject, project); err != nil {
		return nil, err
	}
	return s.detail(project)
}

// Create creates a project. Only admins may create projects.
func (s *ProjectService) Create(subject *models.User, input CreateProjectInput) (*ProjectDetail, error) {
	if !policy.CanCreateProject(subject) {
		return nil, ErrAdminOnly
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		Status:      models.ProjectStatusActive,
		StartDate:   dateOnly(input.StartDate),
		EndDate:     dateOnly(input.EndDate),
	}
	if input.Status != nil {
		status, ok := models.ParseProjectStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		project.Status = status
	}
	if err := validateDateRange(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}
	if input.LeaderID != nil {
		leader, err := findUser(s.store, *input.LeaderID)
		if err != nil {
			return nil, err
		}
		project.LeaderID = &leader.ID
		project.Leader = leader
	}

	if err := s.store.Projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &ProjectDetail{Project: project}, nil
}

// Update applies a partial update. The leader and admins may update a project.
func (s *ProjectService) Update(subject *models.User, id uuid.UUID, input UpdateProjectInput) (*ProjectDetail, error) {
	project, err := findProject(s.store, id)
	if err != nil {
		return nil, err
	}
	if err := requireManager(subject, project); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		status, ok := models.ParseProjectStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		project.Status = status
	}
	if input.ClearStartDate {
		project.StartDate = nil
	} else if input.StartDate != nil {
		project.StartDate = dateOnly(input.StartDate)
	}
	if input.ClearEndDate {
		project.EndDate = nil
	} else if input.EndDate != nil {
		project.EndDate = dateOnly(input.EndDate)
	}
	if err := validateDateRange(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}
	if input.ClearLeader {
		project.LeaderID = nil
	} else if input.LeaderID != nil {
		leader, err := findUser(s.store, *input.LeaderID)
		if err != nil {
			return nil, err
		}
		project.LeaderID = &leader.ID
	}

	if err := s.store.Projects.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := findProject(s.store, id, "Leader")
	if err != nil {
		return nil, err
	}
	return s.detail(updated)
}

// Delete removes a project with its memberships and tasks. Existence is
// checked before permission so a missing project is always reported as such.
func (s *ProjectService) Delete(subject *models.User, id uuid.UUID) error {
	if _, err := findProject(s.store, id); err != nil {
		return err
	}
	if !policy.CanDeleteProject(subject) {
		return ErrAdminOnly
	}

	if err := s.store.Projects.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListMembers returns a project's memberships with users loaded.
func (s *ProjectService) ListMembers(subject *models.User, projectID uuid.UUID) ([]models.ProjectMember, error) {
	project, err := findProject(s.store, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireViewer(s.store, subject, project); err != nil {
		return nil, err
	}

	members, err := s.store.Memberships.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember adds userID to the project.
func (s *ProjectService) AddMember(subject *models.User, projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member *models.ProjectMember

	err := s.store.Transaction(func(tx *repository.Store) error {
		project, err := findProject(tx, projectID)
		if err != nil {
			return err
		}
		if err := requireManager(subject, project); err != nil {
			return err
		}

		user, err := findUser(tx, userID)
		if err != nil {
			return err
		}

		exists, err := tx.Memberships.Exists(projectID, userID)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if exists {
			return ErrAlreadyMember
		}

		member = &models.ProjectMember{
			ProjectID: projectID,
			UserID:    userID,
			JoinedAt:  time.Now(),
		}
		if err := tx.Memberships.Create(member); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("failed to add member: %w", err)
		}
		member.User = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// RemoveMember removes userID from the project. Tasks stay assigned.
func (s *ProjectService) RemoveMember(subject *models.User, projectID, userID uuid.UUID) error {
	project, err := findProject(s.store, projectID)
	if err != nil {
		return err
	}
	if err := requireManager(subject, project); err != nil {
		return err
	}

	if _, err := s.store.Memberships.Find(projectID, userID); err != nil {
		return lookupError(err, ErrMemberNotFound, "member")
	}

	if err := s.store.Memberships.Delete(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *ProjectService) detail(project *models.Project) (*ProjectDetail, error) {
	memberCount, err := s.store.Memberships.CountByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	taskCount, err := s.store.Tasks.Count(repository.TaskFilter{ProjectID: &project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &ProjectDetail{
		Project:     project,
		MemberCount: memberCount,
		TaskCount:   taskCount,
	}, nil
}

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidDateRange
	}
	return nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.DateOf(*t)
	return &d
}
