// Package policy holds the role and relationship checks that gate every
// project, task and dashboard operation. The checks are pure: callers load
// the subject and resources and translate a false result into a forbidden error.
package policy

import (
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// CanManageProject reports whether subject is an admin or the project's leader.
func CanManageProject(subject *models.User, project *models.Project) bool {
	if subject == nil || project == nil {
		return false
	}
	return subject.IsAdmin() || project.IsLedBy(subject.ID)
}

// CanViewProject gates reads of a project and its tasks and members.
func CanViewProject(subject *models.User, project *models.Project, isMember bool) bool {
	return isMember || CanManageProject(subject, project)
}

func CanCreateProject(subject *models.User) bool {
	return subject.IsAdmin()
}

func CanDeleteProject(subject *models.User) bool {
	return subject.IsAdmin()
}

// CanManageTask covers create, update, delete and assignment of tasks in project.
func CanManageTask(subject *models.User, project *models.Project) bool {
	return CanManageProject(subject, project)
}

// CanSetOwnTaskStatus lets assignees move their own tasks between statuses.
// Task assignees must be loaded.
func CanSetOwnTaskStatus(subject *models.User, task *models.Task, project *models.Project) bool {
	if subject == nil || task == nil {
		return false
	}
	return task.IsAssignedTo(subject.ID) || CanManageTask(subject, project)
}

func CanViewLeaderDashboard(subject *models.User, project *models.Project) bool {
	return CanManageProject(subject, project)
}

func CanViewAdminDashboard(subject *models.User) bool {
	return subject.IsAdmin()
}

func CanChangeUserRole(subject *models.User) bool {
	return subject.IsAdmin()
}

// EligibleAssignee reports whether candidateID may be assigned to a task of
// project. isMember is the candidate's current membership in the project.
func EligibleAssignee(project *models.Project, candidateID uuid.UUID, isMember bool) bool {
	return isMember || (project != nil && project.IsLedBy(candidateID))
}
