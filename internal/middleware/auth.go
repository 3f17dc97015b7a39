package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"go.uber.org/zap"
)

// RequireAuth loads the current user from the session cookie or, failing
// that, from an "Authorization: Bearer <token>" header.
func RequireAuth(authService *services.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessionUser(c, authService)
		if err == nil && user == nil {
			if token, ok := bearerToken(c); ok {
				user, err = authService.Authenticate(c.Request.Context(), token)
			}
		}

		if err != nil && !errors.Is(err, services.ErrUnauthenticated) && !errors.Is(err, services.ErrNotFound) {
			log.Error("Failed to authenticate request", zap.Error(err))
			apierrors.InternalError(c, "")
			return
		}
		if user == nil || err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// sessionUser returns nil without error when the session holds no user.
// A session pointing at a deleted user is cleared.
func sessionUser(c *gin.Context, authService *services.AuthService) (*models.User, error) {
	session := sessions.Default(c)
	raw, ok := session.Get(constants.ContextKeyUserID).(string)
	if !ok || raw == "" {
		return nil, nil
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}

	user, err := authService.GetUser(userID)
	if errors.Is(err, services.ErrNotFound) {
		session.Clear()
		_ = session.Save()
		return nil, nil
	}
	return user, err
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
