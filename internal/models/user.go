package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLeader Role = "LEADER"
	RoleMember Role = "MEMBER"
)

// ParseRole normalizes a role name and reports whether it is known.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch role {
	case RoleAdmin, RoleLeader, RoleMember:
		return role, true
	}
	return "", false
}

type User struct {
	ID          uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	ExternalID  string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName string    `gorm:"type:varchar(255)" json:"display_name"`
	PhotoURL    string    `gorm:"type:varchar(1024)" json:"photo_url"`
	Role        Role      `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
