package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pollhub/backend/internal/models"
)

// ContextUser is the key for the resolved user in gin context.
const ContextUser = "current_user"

// SessionResolver resolves a session cookie token to its user.
type SessionResolver interface {
	Current(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser resolves the session cookie into a user and sets it in the
// request context. Anonymous and invalid-session requests pass through with
// no user set; enforcement is RequireUser's job.
func CurrentUser(sessions SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		user, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireUser guards protected routes: without a resolved user the request is
// redirected to the login page and the handler body never runs.
func RequireUser(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the user resolved by CurrentUser, if any.
func UserFrom(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
