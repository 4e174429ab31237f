package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/middleware"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/policy"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
)

// render wraps c.HTML and passes the current user, pending flashes and the
// CSRF field to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["CanManageUsers"] = policy.Allowed(u.Role, policy.ManageUsers)
	}
	data["Flashes"] = session.PopFlashes(c)
	data["CSRFField"] = csrf.TemplateField(c.Request)

	c.HTML(status, tmpl, data)
}

// fail flashes msg and redirects. It is how handled errors reach the user.
func fail(c *gin.Context, to, msg string) {
	session.AddFlash(c, session.Danger, msg)
	c.Redirect(http.StatusFound, to)
}

func succeed(c *gin.Context, to, msg string) {
	session.AddFlash(c, session.Success, msg)
	c.Redirect(http.StatusFound, to)
}
