package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/policy"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	store     *repository.Store
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil, in which
// case task suggestions report ErrAIServiceNotConfigured.
func NewTaskService(store *repository.Store, suggester TaskSuggester) *TaskService {
	return &TaskService{
		store:     store,
		suggester: suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    *string
	Deadline    *time.Time
	AssigneeIDs []uuid.UUID
}

// UpdateTaskInput represents a partial task update. A non-nil AssigneeIDs
// replaces the whole assignee set.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	Deadline      *time.Time
	ClearDeadline bool
	AssigneeIDs   *[]uuid.UUID
}

// TaskSuggestion is a validated AI-generated task. Suggestions are not persisted.
type TaskSuggestion struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Deadline    *time.Time
}

// ListByProject returns a project's tasks with assignees loaded
func (s *TaskService) ListByProject(subject *models.User, projectID uuid.UUID) ([]models.Task, error) {
	project, err := findProject(s.store, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireViewer(s.store, subject, project); err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks.List(repository.TaskFilter{ProjectID: &project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListMine returns every task assigned to the subject
func (s *TaskService) ListMine(subject *models.User) ([]models.Task, error) {
	if subject == nil {
		return nil, ErrUnauthenticated
	}

	tasks, err := s.store.Tasks.List(repository.TaskFilter{AssigneeID: &subject.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task to its assignees and to anyone who can view its project
func (s *TaskService) Get(subject *models.User, id uuid.UUID) (*models.Task, error) {
	task, err := findTask(s.store, id, "Assignees")
	if err != nil {
		return nil, err
	}
	if subject != nil && task.IsAssignedTo(subject.ID) {
		return task, nil
	}

	project, err := findProject(s.store, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := requireViewer(s.store, subject, project); err != nil {
		return nil, err
	}
	return task, nil
}

// Create creates a task in a project. The task and its assignees are written
// together or not at all.
func (s *TaskService) Create(subject *models.User, projectID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	var created *models.Task

	err := s.store.Transaction(func(tx *repository.Store) error {
		project, err := findProject(tx, projectID)
		if err != nil {
			return err
		}
		if !policy.CanManageTask(subject, project) {
			return ErrNotProjectManager
		}

		title := strings.TrimSpace(input.Title)
		if title == "" {
			return ErrTitleRequired
		}

		task := &models.Task{
			Title:       title,
			Description: input.Description,
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			Deadline:    dateOnly(input.Deadline),
			ProjectID:   project.ID,
		}
		if input.Priority != nil {
			if task.Priority, err = parsePriority(*input.Priority); err != nil {
				return err
			}
		}

		assigneeIDs, err := eligibleAssignees(tx, project, input.AssigneeIDs)
		if err != nil {
			return err
		}

		if err := tx.Tasks.Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		if len(assigneeIDs) > 0 {
			if err := tx.Tasks.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
				return fmt.Errorf("failed to assign users: %w", err)
			}
		}

		created, err = findTask(tx, task.ID, "Assignees")
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(subject *models.User, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	var updated *models.Task

	err := s.store.Transaction(func(tx *repository.Store) error {
		task, project, err := s.managedTask(tx, subject, id)
		if err != nil {
			return err
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return ErrTitleRequired
			}
			task.Title = title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil {
			if task.Status, err = parseStatus(*input.Status); err != nil {
				return err
			}
		}
		if input.Priority != nil {
			if task.Priority, err = parsePriority(*input.Priority); err != nil {
				return err
			}
		}
		if input.ClearDeadline {
			task.Deadline = nil
		} else if input.Deadline != nil {
			task.Deadline = dateOnly(input.Deadline)
		}

		if input.AssigneeIDs != nil {
			assigneeIDs, err := eligibleAssignees(tx, project, *input.AssigneeIDs)
			if err != nil {
				return err
			}
			if err := tx.Tasks.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
				return fmt.Errorf("failed to assign users: %w", err)
			}
		}

		if err := tx.Tasks.Update(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		updated, err = findTask(tx, task.ID, "Assignees")
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetStatus moves a task to any status. Assignees may change the status of
// their own tasks; managers may change any task in their project.
func (s *TaskService) SetStatus(subject *models.User, id uuid.UUID, rawStatus string) (*models.Task, error) {
	task, err := findTask(s.store, id, "Assignees")
	if err != nil {
		return nil, err
	}
	project, err := findProject(s.store, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanSetOwnTaskStatus(subject, task, project) {
		return nil, ErrTaskPermissionDenied
	}

	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.store.Tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return task, nil
}

// ReplaceAssignees swaps the task's assignee set. An ineligible or unknown
// user aborts the replacement and leaves the current set in place.
func (s *TaskService) ReplaceAssignees(subject *models.User, id uuid.UUID, userIDs []uuid.UUID) (*models.Task, error) {
	var updated *models.Task

	err := s.store.Transaction(func(tx *repository.Store) error {
		task, project, err := s.managedTask(tx, subject, id)
		if err != nil {
			return err
		}

		assigneeIDs, err := eligibleAssignees(tx, project, userIDs)
		if err != nil {
			return err
		}
		if err := tx.Tasks.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
			return fmt.Errorf("failed to assign users: %w", err)
		}

		updated, err = findTask(tx, task.ID, "Assignees")
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete deletes a task and its assignments
func (s *TaskService) Delete(subject *models.User, id uuid.UUID) error {
	task, _, err := s.managedTask(s.store, subject, id)
	if err != nil {
		return err
	}

	if err := s.store.Tasks.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// SuggestTasks asks the AI service for tasks described by text. Only project
// managers may request suggestions.
func (s *TaskService) SuggestTasks(ctx context.Context, subject *models.User, projectID uuid.UUID, text string) ([]TaskSuggestion, error) {
	project, err := findProject(s.store, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageTask(subject, project) {
		return nil, ErrNotProjectManager
	}
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSuggestTextEmpty
	}
	if len(text) > constants.MaxSuggestTextBytes {
		return nil, ErrSuggestTextTooLong
	}

	today := models.DateOf(time.Now())
	aiTasks, err := s.suggester.GenerateTasksFromText(ctx, project.Name, text, today)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	suggestions := make([]TaskSuggestion, 0, len(aiTasks))
	for _, aiTask := range aiTasks {
		title := strings.TrimSpace(aiTask.Title)
		if title == "" {
			continue
		}

		suggestion := TaskSuggestion{
			Title:       title,
			Description: strings.TrimSpace(aiTask.Description),
			Priority:    models.TaskPriorityMedium,
		}
		if priority, ok := models.ParseTaskPriority(aiTask.Priority); ok {
			suggestion.Priority = priority
		}
		if aiTask.Deadline != nil {
			// Deadlines in the past or in an unexpected format are dropped
			if deadline, err := models.ParseDate(*aiTask.Deadline); err == nil && !deadline.Before(today) {
				suggestion.Deadline = &deadline
			}
		}

		suggestions = append(suggestions, suggestion)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return suggestions, nil
}

// managedTask loads a task and its project and checks that subject manages it
func (s *TaskService) managedTask(store *repository.Store, subject *models.User, id uuid.UUID) (*models.Task, *models.Project, error) {
	task, err := findTask(store, id)
	if err != nil {
		return nil, nil, err
	}
	project, err := findProject(store, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.CanManageTask(subject, project) {
		return nil, nil, ErrNotProjectManager
	}
	return task, project, nil
}

// eligibleAssignees de-duplicates userIDs and checks that every user exists and
// is a member or the leader of project.
func eligibleAssignees(store *repository.Store, project *models.Project, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := uniqueIDs(userIDs)
	if len(ids) == 0 {
		return ids, nil
	}

	users, err := store.Users.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify users: %w", err)
	}
	if len(users) != len(ids) {
		return nil, ErrUserNotFound
	}

	for _, id := range ids {
		isMember, err := store.Memberships.Exists(project.ID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to verify project membership: %w", err)
		}
		if !policy.EligibleAssignee(project, id, isMember) {
			return nil, ErrIneligibleAssignee
		}
	}

	return ids, nil
}

func parseStatus(raw string) (models.TaskStatus, error) {
	status, ok := models.ParseTaskStatus(raw)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func parsePriority(raw string) (models.TaskPriority, error) {
	priority, ok := models.ParseTaskPriority(raw)
	if !ok {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

// uniqueIDs removes duplicate values while keeping the first occurrence order
func uniqueIDs(values []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(values))
	result := make([]uuid.UUID, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
