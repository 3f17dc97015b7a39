package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"go.uber.org/zap"
)

// ProjectHandler serves projects and their memberships.
type ProjectHandler struct {
	projectService *services.ProjectService
	log            *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// ListProjects returns the projects visible to the current user.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListForSubject(user)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
	})
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(user, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project. Admin only.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Status      *string    `json:"status"`
		StartDate   *dto.Date  `json:"startDate"`
		EndDate     *dto.Date  `json:"endDate"`
		LeaderID    *uuid.UUID `json:"leaderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	project, err := h.projectService.Create(user, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate.Time(),
		EndDate:     req.EndDate.Time(),
		LeaderID:    req.LeaderID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("created_by", user.ID.String()),
	)
	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update. An explicit null clears
// startDate, endDate or leaderId.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string                 `json:"name"`
		Description *string                 `json:"description"`
		Status      *string                 `json:"status"`
		StartDate   dto.Nullable[dto.Date]  `json:"startDate"`
		EndDate     dto.Nullable[dto.Date]  `json:"endDate"`
		LeaderID    dto.Nullable[uuid.UUID] `json:"leaderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	project, err := h.projectService.Update(user, id, services.UpdateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Status:         req.Status,
		StartDate:      req.StartDate.Value.Time(),
		ClearStartDate: req.StartDate.IsNull(),
		EndDate:        req.EndDate.Value.Time(),
		ClearEndDate:   req.EndDate.IsNull(),
		LeaderID:       req.LeaderID.Value,
		ClearLeader:    req.LeaderID.IsNull(),
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project with its tasks and memberships. Admin only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(user, id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("Project deleted",
		zap.String("project_id", id.String()),
		zap.String("deleted_by", user.ID.String()),
	)
	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func (h *ProjectHandler) ListMembers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(user, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToProjectMemberDTOs(members),
	})
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		UserID uuid.UUID `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	member, err := h.projectService.AddMember(user, id, req.UserID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectMemberDTO(*member))
}

// RemoveMember removes a member. Tasks assigned to them stay assigned.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(user, id, memberID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}
