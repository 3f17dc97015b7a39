package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	if filter.ProjectIDs != nil && len(filter.ProjectIDs) == 0 {
		return []models.Task{}, nil
	}

	query := r.filtered(filter)
	if err := query.Preload("Assignees").Order("tasks.created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Count counts tasks matching the filter
func (r *GormTaskRepository) Count(filter TaskFilter) (int64, error) {
	if filter.ProjectIDs != nil && len(filter.ProjectIDs) == 0 {
		return 0, nil
	}

	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormTaskRepository) filtered(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if len(filter.ProjectIDs) > 0 {
		query = query.Where("tasks.project_id IN ?", filter.ProjectIDs)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignee{}).
			Select("1").
			Where("task_assignees.task_id = tasks.id").
			Where("task_assignees.user_id = ?", *filter.AssigneeID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.OverdueAsOf != nil {
		query = query.
			Where("tasks.deadline IS NOT NULL").
			Where("tasks.deadline < ?", models.DateOf(*filter.OverdueAsOf)).
			Where("tasks.status <> ?", models.TaskStatusDone)
	}

	return query
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task together with its assignments
func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Task{}).Error
	})
}

// ReplaceAssignees swaps the task's assignee set for userIDs
func (r *GormTaskRepository) ReplaceAssignees(taskID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		assignments := make([]models.TaskAssignee, len(userIDs))
		for i, userID := range userIDs {
			assignments[i] = models.TaskAssignee{
				TaskID: taskID,
				UserID: userID,
			}
		}

		return tx.Create(&assignments).Error
	})
}
