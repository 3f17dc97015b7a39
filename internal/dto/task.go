package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Deadline    *Date               `json:"deadline"`
	ProjectID   uuid.UUID           `json:"projectId"`
	Assignees   []UserDTO           `json:"assignees"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// TaskSuggestionDTO represents an AI-suggested task that has not been created
type TaskSuggestionDTO struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Deadline    *Date               `json:"deadline"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    ToDate(task.Deadline),
		ProjectID:   task.ProjectID,
		Assignees:   ToUserDTOs(task.Assignees),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskSuggestionDTOs converts AI suggestions
func ToTaskSuggestionDTOs(suggestions []services.TaskSuggestion) []TaskSuggestionDTO {
	dtos := make([]TaskSuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = TaskSuggestionDTO{
			Title:       s.Title,
			Description: s.Description,
			Priority:    s.Priority,
			Deadline:    ToDate(s.Deadline),
		}
	}
	return dtos
}
