package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"go.uber.org/zap"
)

// DashboardHandler serves the per-role reports.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	location         *time.Location
	now              func() time.Time
	log              *zap.Logger
}

// NewDashboardHandler creates a DashboardHandler. Without a date query
// parameter, reports are computed for the current day in location.
func NewDashboardHandler(dashboardService *services.DashboardService, location *time.Location, log *zap.Logger) *DashboardHandler {
	if location == nil {
		location = time.Local
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		location:         location,
		now:              time.Now,
		log:              log,
	}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	report, err := h.dashboardService.AdminReport(user, today)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DashboardHandler) Leader(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "projectId")
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	report, err := h.dashboardService.LeaderReport(user, projectID, today)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DashboardHandler) Member(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	today, ok := h.today(c)
	if !ok {
		return
	}

	report, err := h.dashboardService.MemberReport(user, today)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// today reads ?date=YYYY-MM-DD, defaulting to the current local date.
func (h *DashboardHandler) today(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return models.DateOf(h.now().In(h.location)), true
	}

	date, err := models.ParseDate(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
