package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus accepts "in progress", "In_Progress" and similar spellings.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	status := TaskStatus(normalizeEnum(s))
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return status, true
	}
	return "", false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func ParseTaskPriority(s string) (TaskPriority, bool) {
	priority := TaskPriority(normalizeEnum(s))
	switch priority {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return priority, true
	}
	return "", false
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:char(36);primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Deadline    *time.Time   `gorm:"type:date" json:"deadline"`
	ProjectID   uuid.UUID    `gorm:"type:char(36);not null;index" json:"project_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignees []User  `gorm:"many2many:task_assignees" json:"assignees,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	return nil
}

// IsOverdueOn reports whether the task has a deadline before today and is not done.
func (t *Task) IsOverdueOn(today time.Time) bool {
	return t.Deadline != nil && t.Status != TaskStatusDone && DateOf(*t.Deadline).Before(DateOf(today))
}

// IsAssignedTo requires Assignees to be loaded.
func (t *Task) IsAssignedTo(userID uuid.UUID) bool {
	for _, u := range t.Assignees {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// TaskAssignee is the join row between a task and one of its assignees.
type TaskAssignee struct {
	TaskID     uuid.UUID `gorm:"type:char(36);primarykey"`
	UserID     uuid.UUID `gorm:"type:char(36);primarykey"`
	AssignedAt time.Time `gorm:"autoCreateTime"`
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}
