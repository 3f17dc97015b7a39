package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uuid.UUID, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects matching the filter
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, error) {
	var projects []models.Project

	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []models.Project{}, nil
	}

	query := r.db.Model(&models.Project{})
	if filter.LeaderID != nil {
		query = query.Where("projects.leader_id = ?", *filter.LeaderID)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("projects.id IN ?", filter.IDs)
	}

	if err := query.Preload("Leader").Order("projects.created_at ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)

		// Delete assignments of the project's tasks
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all members
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		// Delete project
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}
