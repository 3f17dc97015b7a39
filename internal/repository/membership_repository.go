package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Create adds a member to a project
func (r *GormMembershipRepository) Create(member *models.ProjectMember) error {
	return r.db.Omit(clause.Associations).Create(member).Error
}

// Delete removes a member from a project
func (r *GormMembershipRepository) Delete(projectID, userID uuid.UUID) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// Find finds a specific project member
func (r *GormMembershipRepository) Find(projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Exists reports whether the user is a member of the project
func (r *GormMembershipRepository) Exists(projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListByProject lists all members of a project
func (r *GormMembershipRepository) ListByProject(projectID uuid.UUID) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListByUser lists all projects a user is a member of
func (r *GormMembershipRepository) ListByUser(userID uuid.UUID) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	if err := r.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountByProject counts the members of a project
func (r *GormMembershipRepository) CountByProject(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
