package constants

const (
	// ContextKeyUserID is the session and gin context key holding the current user's ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUser is the gin context key holding the loaded *models.User.
	ContextKeyUser = "current_user"

	SessionCookieName = "dashboard_session"

	// TopContributorsLimit caps the admin report's ranking.
	TopContributorsLimit = 10

	// Contribution score weights.
	CompletedTaskPoints = 10
	OverdueTaskPenalty  = 5

	MaxAIGeneratedTasks = 20
	MaxSuggestTextBytes = 8000
)
