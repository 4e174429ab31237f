package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/policy"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
)

// RequireAuth sends anonymous requests to the login page. It relies on
// InjectUser having run first.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAction lets the request through only when the current user's role
// may perform action.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if !policy.Allowed(user.Role, action) {
			session.AddFlash(c, session.Danger, "Acceso no autorizado")
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
