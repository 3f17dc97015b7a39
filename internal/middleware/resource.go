package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
)

const paramKeyPrefix = "param_uuid_"

// RequireUUIDParams rejects requests whose named path parameters are not UUIDs
// and stores the parsed values for GetUUIDParam.
func RequireUUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			id, err := uuid.Parse(c.Param(name))
			if err != nil {
				apierrors.BadRequest(c, "Invalid "+name)
				return
			}
			c.Set(paramKeyPrefix+name, id)
		}
		c.Next()
	}
}

// GetUUIDParam returns a path parameter validated by RequireUUIDParams,
// parsing it directly when the middleware did not run.
func GetUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	if value, exists := c.Get(paramKeyPrefix + name); exists {
		id, ok := value.(uuid.UUID)
		return id, ok
	}
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}
