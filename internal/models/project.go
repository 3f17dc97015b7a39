package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// ParseProjectStatus accepts the same loose spellings as ParseTaskStatus.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	status := ProjectStatus(normalizeEnum(s))
	switch status {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return status, true
	}
	return "", false
}

type Project struct {
	ID          uuid.UUID     `gorm:"type:char(36);primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	StartDate   *time.Time    `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time    `gorm:"type:date" json:"end_date"`
	LeaderID    *uuid.UUID    `gorm:"type:char(36);index" json:"leader_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Leader  *User           `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	return nil
}

// IsLedBy reports whether userID is the project's leader.
func (p *Project) IsLedBy(userID uuid.UUID) bool {
	return p.LeaderID != nil && *p.LeaderID == userID
}

func (p *Project) IsCompleted() bool {
	return p.Status == ProjectStatusCompleted
}

// IsActiveOn reports whether the project has started, has not ended and is
// not completed as of today. A project without a start date is never active.
func (p *Project) IsActiveOn(today time.Time) bool {
	if p.IsCompleted() || p.StartDate == nil {
		return false
	}
	today = DateOf(today)
	if DateOf(*p.StartDate).After(today) {
		return false
	}
	return p.EndDate == nil || !DateOf(*p.EndDate).Before(today)
}

// IsOverdueOn reports whether a non-completed project is past its end date.
func (p *Project) IsOverdueOn(today time.Time) bool {
	return !p.IsCompleted() && p.EndDate != nil && DateOf(*p.EndDate).Before(DateOf(today))
}

// IsUpcomingOn reports whether a non-completed project starts after today.
func (p *Project) IsUpcomingOn(today time.Time) bool {
	return !p.IsCompleted() && p.StartDate != nil && DateOf(*p.StartDate).After(DateOf(today))
}
