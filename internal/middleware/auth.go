package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/auth"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/models"
	"careconnect_web/internal/session"
	"careconnect_web/internal/views"
	"careconnect_web/pkg/apperrors"
)

// RequireRoles guards a page. Anonymous visitors go to the login page with
// the requested page as next, other roles go back to the dashboard.
// No roles means any signed-in user.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)

		switch auth.Authorize(sess, roles...) {
		case auth.Allow:
			c.Next()
		case auth.RequireLogin:
			next := ""
			if c.Request.Method == http.MethodGet {
				next = c.Request.URL.RequestURI()
			}
			c.Redirect(http.StatusFound, auth.LoginURL(next))
			c.Abort()
		default:
			logger.CtxWarn(c.Request.Context(), "access denied",
				"path", c.Request.URL.Path,
				"role", sess.Role(),
			)
			views.Error(c, apperrors.ErrAccessDenied.Message)
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
		}
	}
}

func RequireAuth() gin.HandlerFunc {
	return RequireRoles()
}

// RedirectIfAuthenticated keeps signed-in users off the login and register pages.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.FromContext(c).IsAuthenticated() {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
