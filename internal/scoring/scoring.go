// Package scoring computes the derived contributor metrics shown on dashboards.
package scoring

import (
	"math"

	"github.com/yukikurage/project-dashboard-api/internal/constants"
)

// ContributionScore is max(0, completed*10 - overdue*5).
func ContributionScore(completed, overdue int64) int64 {
	score := completed*constants.CompletedTaskPoints - overdue*constants.OverdueTaskPenalty
	if score < 0 {
		return 0
	}
	return score
}

// CompletionRate returns completed/total as a percentage rounded half-up to
// two decimals, or 0 when there are no tasks.
func CompletionRate(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Floor(rate*100+0.5) / 100
}
