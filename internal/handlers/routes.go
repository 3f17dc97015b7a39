package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-dashboard-api/internal/middleware"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Project   *ProjectHandler
	Task      *TaskHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

// RegisterRoutes mounts the API on r. requireAuth guards every route except
// health, login and logout.
func RegisterRoutes(r gin.IRouter, h *Handlers, requireAuth gin.HandlerFunc) {
	r.GET("/health", h.Health.Health)

	id := middleware.RequireUUIDParams("id")

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.Me)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", h.User.ListUsers)
			users.GET("/me", h.User.GetMe)
			users.PUT("/me/name", h.User.UpdateMyName)
			users.GET("/:id", id, h.User.GetUser)
			users.PATCH("/:id/role", id, h.User.UpdateRole)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", h.Project.ListProjects)
			projects.POST("", h.Project.CreateProject)
			projects.GET("/:id", id, h.Project.GetProject)
			projects.PUT("/:id", id, h.Project.UpdateProject)
			projects.DELETE("/:id", id, h.Project.DeleteProject)
			projects.GET("/:id/members", id, h.Project.ListMembers)
			projects.POST("/:id/members", id, h.Project.AddMember)
			projects.DELETE("/:id/members/:userId", middleware.RequireUUIDParams("id", "userId"), h.Project.RemoveMember)
			projects.GET("/:id/tasks", id, h.Task.ListProjectTasks)
			projects.POST("/:id/tasks", id, h.Task.CreateTask)
			projects.POST("/:id/tasks/suggest", id, h.Task.SuggestTasks)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/my", h.Task.ListMyTasks)
			tasks.GET("/:id", id, h.Task.GetTask)
			tasks.PUT("/:id", id, h.Task.UpdateTask)
			tasks.DELETE("/:id", id, h.Task.DeleteTask)
			tasks.PUT("/:id/status", id, h.Task.UpdateTaskStatus)
			tasks.PUT("/:id/assignees", id, h.Task.UpdateTaskAssignees)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(requireAuth)
		{
			dashboard.GET("/admin", h.Dashboard.Admin)
			dashboard.GET("/leader/:projectId", middleware.RequireUUIDParams("projectId"), h.Dashboard.Leader)
			dashboard.GET("/member", h.Dashboard.Member)
		}
	}
}
