package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectMember struct {
	ProjectID uuid.UUID `gorm:"type:char(36);primarykey" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:char(36);primarykey" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
