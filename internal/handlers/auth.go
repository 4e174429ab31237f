package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/middleware"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/users"
)

func (h *Handler) Index(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Iniciar sesión"})
}

type loginForm struct {
	Username string `form:"usuario"`
	Password string `form:"contrasena"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, "/login", "Datos de acceso inválidos")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), strings.TrimSpace(form.Username), form.Password)
	if err != nil {
		if !errors.Is(err, users.ErrInvalidCredentials) {
			h.logger(c).WithError(err).Error("authenticate")
		}
		h.metrics.Logins.WithLabelValues("failure").Inc()
		fail(c, "/login", "Usuario inactivo o credenciales incorrectos")
		return
	}

	if err := session.Login(c, user.ID); err != nil {
		h.logger(c).WithError(err).Error("save session")
		fail(c, "/login", "No se pudo iniciar la sesión")
		return
	}
	h.metrics.Logins.WithLabelValues("success").Inc()
	h.logger(c).WithField("user_id", user.ID).Info("user logged in")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	_ = session.Logout(c)
	c.Redirect(http.StatusFound, "/login")
}
