package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasklists/tasks-api/internal/logger"
	"github.com/tasklists/tasks-api/internal/middleware"
)

// SuperAdminFactor multiplies the permit limit for the privileged role.
const SuperAdminFactor = 10

// Middleware partitions requests by authenticated user id, falling back to
// client IP for anonymous callers. Rejected requests get a bare 429 and are
// logged; the handler never runs.
func Middleware(users, ips *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			key     string
			allowed bool
		)

		if user, ok := middleware.CurrentUser(c); ok {
			factor := 1
			if user.IsSuperAdmin() {
				factor = SuperAdminFactor
			}
			key = "user:" + strconv.FormatUint(user.ID, 10)
			allowed = users.Allow(key, factor)
		} else {
			key = "ip:" + c.ClientIP()
			allowed = ips.Allow(key, 1)
		}

		if !allowed {
			logger.Warn("request rejected by rate limiter",
				zap.String("partition", key),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
