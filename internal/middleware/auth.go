package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tasklists/tasks-api/internal/apperrors"
	"github.com/tasklists/tasks-api/internal/auth"
	"github.com/tasklists/tasks-api/internal/token"
)

const contextKeyUser = "auth_user"

// Authenticate resolves a Bearer token into the request's auth.User. It never
// aborts: unauthenticated requests pass through so the rate limiter can still
// partition them by IP, and RequireAuth gates the protected groups.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.Next()
			return
		}

		SetCurrentUser(c, auth.User{
			ID:       id,
			Username: claims.Username,
			Email:    claims.Email,
			Roles:    claims.Roles,
		})
		c.Next()
	}
}

// SetCurrentUser stores the authenticated caller on the request context.
func SetCurrentUser(c *gin.Context, user auth.User) {
	c.Set(contextKeyUser, user)
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			apperrors.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated caller from the request context.
func CurrentUser(c *gin.Context) (auth.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return auth.User{}, false
	}
	user, ok := value.(auth.User)
	return user, ok
}
