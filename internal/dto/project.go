package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	StartDate   *Date                `json:"startDate"`
	EndDate     *Date                `json:"endDate"`
	Leader      *UserDTO             `json:"leader"`
	MemberCount int64                `json:"memberCount"`
	TaskCount   int64                `json:"taskCount"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ProjectMemberDTO represents a membership in API responses
type ProjectMemberDTO struct {
	UserDTO
	JoinedAt time.Time `json:"joinedAt"`
}

// ToProjectDTO converts a ProjectDetail to ProjectDTO
func ToProjectDTO(detail services.ProjectDetail) ProjectDTO {
	project := detail.Project
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		StartDate:   ToDate(project.StartDate),
		EndDate:     ToDate(project.EndDate),
		MemberCount: detail.MemberCount,
		TaskCount:   detail.TaskCount,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include leader if preloaded
	if project.Leader != nil {
		leader := ToUserDTO(*project.Leader)
		dto.Leader = &leader
	}
	return dto
}

// ToProjectDTOs converts a slice of project details
func ToProjectDTOs(details []services.ProjectDetail) []ProjectDTO {
	dtos := make([]ProjectDTO, len(details))
	for i, d := range details {
		dtos[i] = ToProjectDTO(d)
	}
	return dtos
}

// ToProjectMemberDTO converts a ProjectMember with its user loaded
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		UserDTO:  ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectMemberDTOs converts a slice of memberships
func ToProjectMemberDTOs(members []models.ProjectMember) []ProjectMemberDTO {
	dtos := make([]ProjectMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = ToProjectMemberDTO(m)
	}
	return dtos
}
