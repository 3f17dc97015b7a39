package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error a service returns to a caller either wraps one of
// these or is an unexpected store failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service unavailable")
)

var (
	ErrProjectNotFound = fmt.Errorf("%w: project not found", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("%w: task not found", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrMemberNotFound  = fmt.Errorf("%w: member not found in project", ErrNotFound)

	ErrNotProjectManager    = fmt.Errorf("%w: only the project leader or an admin can manage this project", ErrForbidden)
	ErrNotProjectViewer     = fmt.Errorf("%w: you are not a member of this project", ErrForbidden)
	ErrAdminOnly            = fmt.Errorf("%w: only admins can perform this action", ErrForbidden)
	ErrTaskPermissionDenied = fmt.Errorf("%w: you can only update the status of your own tasks", ErrForbidden)

	ErrNameRequired           = fmt.Errorf("%w: name is required", ErrInvalidInput)
	ErrTitleRequired          = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrInvalidDateRange       = fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	ErrInvalidStatus          = fmt.Errorf("%w: unknown status", ErrInvalidInput)
	ErrInvalidPriority        = fmt.Errorf("%w: unknown priority", ErrInvalidInput)
	ErrInvalidRole            = fmt.Errorf("%w: unknown role", ErrInvalidInput)
	ErrIneligibleAssignee     = fmt.Errorf("%w: assignee must be a member or the leader of the project", ErrInvalidInput)
	ErrAlreadyMember          = fmt.Errorf("%w: user is already a member of this project", ErrInvalidInput)
	ErrEmailAlreadyRegistered = fmt.Errorf("%w: email is already registered to another account", ErrInvalidInput)
	ErrSuggestTextEmpty       = fmt.Errorf("%w: text is required", ErrInvalidInput)
	ErrSuggestTextTooLong     = fmt.Errorf("%w: text is too long", ErrInvalidInput)

	ErrInvalidCredential = fmt.Errorf("%w: invalid or expired credential", ErrUnauthenticated)

	ErrAIServiceNotConfigured = fmt.Errorf("%w: AI service is not configured", ErrServiceUnavailable)
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
)

// lookupError maps a missing record to notFound and wraps anything else.
func lookupError(err, notFound error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
