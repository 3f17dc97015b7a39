package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/policy"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/scoring"
)

// DashboardService builds the per-role reports. Every report is recomputed
// from the store on each call relative to the supplied today.
type DashboardService struct {
	store *repository.Store
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// ContributorStats summarizes one user's assigned tasks.
type ContributorStats struct {
	UserID            uuid.UUID `json:"userId"`
	DisplayName       string    `json:"displayName"`
	Email             string    `json:"email"`
	AssignedTasks     int64     `json:"assignedTasks"`
	CompletedTasks    int64     `json:"completedTasks"`
	OverdueTasks      int64     `json:"overdueTasks"`
	CompletionRate    float64   `json:"completionRate"`
	ContributionScore int64     `json:"contributionScore"`
}

type AdminReport struct {
	TotalProjects     int64              `json:"totalProjects"`
	ActiveProjects    int64              `json:"activeProjects"`
	CompletedProjects int64              `json:"completedProjects"`
	OverdueProjects   int64              `json:"overdueProjects"`
	UpcomingProjects  int64              `json:"upcomingProjects"`
	TotalMembers      int64              `json:"totalMembers"`
	TotalTasks        int64              `json:"totalTasks"`
	CompletedTasks    int64              `json:"completedTasks"`
	OverdueTasks      int64              `json:"overdueTasks"`
	TopContributors   []ContributorStats `json:"topContributors"`
}

type LeaderReport struct {
	ProjectID          uuid.UUID          `json:"projectId"`
	ProjectName        string             `json:"projectName"`
	MemberCount        int64              `json:"memberCount"`
	TotalTasks         int64              `json:"totalTasks"`
	TodoTasks          int64              `json:"todoTasks"`
	InProgressTasks    int64              `json:"inProgressTasks"`
	CompletedTasks     int64              `json:"completedTasks"`
	OverdueTasks       int64              `json:"overdueTasks"`
	MemberPerformances []ContributorStats `json:"memberPerformances"`
}

type MemberReport struct {
	TotalAssigned     int64   `json:"totalAssigned"`
	TodoTasks         int64   `json:"todoTasks"`
	InProgressTasks   int64   `json:"inProgressTasks"`
	CompletedTasks    int64   `json:"completedTasks"`
	OverdueTasks      int64   `json:"overdueTasks"`
	CompletionRate    float64 `json:"completionRate"`
	ContributionScore int64   `json:"contributionScore"`
}

// AdminReport summarizes every project, task and user. Overdue tasks are only
// counted for projects that are active today.
func (s *DashboardService) AdminReport(subject *models.User, today time.Time) (*AdminReport, error) {
	if !policy.CanViewAdminDashboard(subject) {
		return nil, ErrAdminOnly
	}

	projects, err := s.store.Projects.List(repository.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	report := &AdminReport{TotalProjects: int64(len(projects))}
	activeIDs := []uuid.UUID{}
	for i := range projects {
		project := &projects[i]
		if project.IsCompleted() {
			report.CompletedProjects++
			continue
		}
		if project.IsActiveOn(today) {
			report.ActiveProjects++
			activeIDs = append(activeIDs, project.ID)
		}
		if project.IsOverdueOn(today) {
			report.OverdueProjects++
		}
		if project.IsUpcomingOn(today) {
			report.UpcomingProjects++
		}
	}

	report.TotalMembers, err = s.store.Users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// only tasks of active projects count as overdue
	report.OverdueTasks, err = s.store.Tasks.Count(repository.TaskFilter{ProjectIDs: activeIDs, OverdueAsOf: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	tasks, err := s.store.Tasks.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tallies := make(map[uuid.UUID]*tally)
	for i := range tasks {
		task := &tasks[i]
		report.TotalTasks++
		if task.Status == models.TaskStatusDone {
			report.CompletedTasks++
		}
		for _, assignee := range task.Assignees {
			t, ok := tallies[assignee.ID]
			if !ok {
				t = &tally{}
				tallies[assignee.ID] = t
			}
			t.add(task, today)
		}
	}

	users, err := s.store.Users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	contributors := make([]ContributorStats, 0, len(users))
	for _, user := range users {
		contributors = append(contributors, tallies[user.ID].stats(user))
	}
	rankContributors(contributors)
	if len(contributors) > constants.TopContributorsLimit {
		contributors = contributors[:constants.TopContributorsLimit]
	}
	report.TopContributors = contributors

	return report, nil
}

// LeaderReport summarizes one project. Member statistics only cover tasks of
// that project.
func (s *DashboardService) LeaderReport(subject *models.User, projectID uuid.UUID, today time.Time) (*LeaderReport, error) {
	project, err := s.store.Projects.FindByID(projectID)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "project")
	}

	if !policy.CanViewLeaderDashboard(subject, project) {
		return nil, ErrNotProjectManager
	}

	report := &LeaderReport{
		ProjectID:   project.ID,
		ProjectName: project.Name,
	}

	report.MemberCount, err = s.store.Memberships.CountByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	counts := []struct {
		dst    *int64
		filter repository.TaskFilter
	}{
		{&report.TotalTasks, repository.TaskFilter{ProjectID: &project.ID}},
		{&report.TodoTasks, repository.TaskFilter{ProjectID: &project.ID, Status: statusPtr(models.TaskStatusTodo)}},
		{&report.InProgressTasks, repository.TaskFilter{ProjectID: &project.ID, Status: statusPtr(models.TaskStatusInProgress)}},
		{&report.CompletedTasks, repository.TaskFilter{ProjectID: &project.ID, Status: statusPtr(models.TaskStatusDone)}},
		{&report.OverdueTasks, repository.TaskFilter{ProjectID: &project.ID, OverdueAsOf: &today}},
	}
	for _, c := range counts {
		if *c.dst, err = s.store.Tasks.Count(c.filter); err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
	}

	members, err := s.store.Memberships.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	tasks, err := s.store.Tasks.List(repository.TaskFilter{ProjectID: &project.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	performances := make([]ContributorStats, 0, len(members))
	for _, member := range members {
		t := &tally{}
		for i := range tasks {
			if tasks[i].IsAssignedTo(member.UserID) {
				t.add(&tasks[i], today)
			}
		}
		performances = append(performances, t.stats(member.User))
	}
	rankContributors(performances)
	report.MemberPerformances = performances

	return report, nil
}

// MemberReport summarizes the subject's own assigned tasks across all projects.
func (s *DashboardService) MemberReport(subject *models.User, today time.Time) (*MemberReport, error) {
	if subject == nil {
		return nil, ErrUnauthenticated
	}

	report := &MemberReport{}
	counts := []struct {
		dst    *int64
		filter repository.TaskFilter
	}{
		{&report.TotalAssigned, repository.TaskFilter{AssigneeID: &subject.ID}},
		{&report.TodoTasks, repository.TaskFilter{AssigneeID: &subject.ID, Status: statusPtr(models.TaskStatusTodo)}},
		{&report.InProgressTasks, repository.TaskFilter{AssigneeID: &subject.ID, Status: statusPtr(models.TaskStatusInProgress)}},
		{&report.CompletedTasks, repository.TaskFilter{AssigneeID: &subject.ID, Status: statusPtr(models.TaskStatusDone)}},
		{&report.OverdueTasks, repository.TaskFilter{AssigneeID: &subject.ID, OverdueAsOf: &today}},
	}
	for _, c := range counts {
		var err error
		if *c.dst, err = s.store.Tasks.Count(c.filter); err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
	}

	report.CompletionRate = scoring.CompletionRate(report.CompletedTasks, report.TotalAssigned)
	report.ContributionScore = scoring.ContributionScore(report.CompletedTasks, report.OverdueTasks)
	return report, nil
}

type tally struct {
	assigned  int64
	completed int64
	overdue   int64
}

func (t *tally) add(task *models.Task, today time.Time) {
	t.assigned++
	if task.Status == models.TaskStatusDone {
		t.completed++
	}
	if task.IsOverdueOn(today) {
		t.overdue++
	}
}

// stats is safe on a nil tally, which yields all-zero statistics.
func (t *tally) stats(user models.User) ContributorStats {
	if t == nil {
		t = &tally{}
	}
	return ContributorStats{
		UserID:            user.ID,
		DisplayName:       user.DisplayName,
		Email:             user.Email,
		AssignedTasks:     t.assigned,
		CompletedTasks:    t.completed,
		OverdueTasks:      t.overdue,
		CompletionRate:    scoring.CompletionRate(t.completed, t.assigned),
		ContributionScore: scoring.ContributionScore(t.completed, t.overdue),
	}
}

// rankContributors orders by score descending, then user ID ascending.
func rankContributors(stats []ContributorStats) {
	slices.SortFunc(stats, func(a, b ContributorStats) int {
		if c := cmp.Compare(b.ContributionScore, a.ContributionScore); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID.String(), b.UserID.String())
	})
}

func statusPtr(status models.TaskStatus) *models.TaskStatus {
	return &status
}
