package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/config"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/handlers"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/metrics"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/middleware"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/policy"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/users"
	"github.com/edwardvalandre-netizen/ugel-monitor/web"
)

type Options struct {
	Config   *config.Config
	Handler  *handlers.Handler
	Users    *users.Store
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // served on /metrics when metrics are enabled
	Log      logrus.FieldLogger
}

var funcs = template.FuncMap{
	"roleLabel": func(r models.UserRole) string { return r.Label() },
	"percent":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" },
	// the bar is drawn up to 100% even when the target is exceeded
	"barWidth": func(v float64) float64 {
		if v > 100 {
			return 100
		}
		return v
	},
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.html"))
}

func NewRouter(o Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(o.Log, o.Metrics))

	r.SetHTMLTemplate(Templates())
	r.StaticFS("/static", http.FS(web.Static()))

	store := cookie.NewStore([]byte(o.Config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		Secure:   o.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(session.CookieName, store))
	r.Use(middleware.InjectUser(o.Users, o.Log))

	h := o.Handler
	limiter := middleware.NewLoginLimiter(o.Config.LoginRate, o.Config.LoginBurst)

	r.GET("/", h.Index)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", limiter.Middleware(), h.Login)
	r.GET("/logout", h.Logout)
	r.POST("/logout", h.Logout)

	// HEALTHCHECK
	r.GET("/health", h.Health)
	if o.Config.MetricsEnabled && o.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// VISITS
	auth.GET("/dashboard", middleware.RequireAction(policy.ViewDashboard), h.Dashboard)
	auth.GET("/nueva_visita", middleware.RequireAction(policy.CreateVisit), h.ShowNewVisit)
	auth.POST("/nueva_visita", middleware.RequireAction(policy.CreateVisit), h.CreateVisit)

	// EXPORTS
	exports := auth.Group("/", middleware.RequireAction(policy.ExportVisits))
	exports.GET("/generar_pdf/:id", h.VisitPDF)
	exports.GET("/generar_ppt/:id", h.VisitSlides)
	exports.GET("/exportar_excel", h.ExportSpreadsheet)
	exports.GET("/generar_informe_mensual/:mes", h.MonthlySummary)

	// USERS (admin only)
	admin := auth.Group("/", middleware.RequireAction(policy.ManageUsers))
	admin.GET("/gestion_usuarios", h.ListUsers)
	admin.GET("/editar_usuario/:id", h.EditUser)
	admin.POST("/crear_usuario", h.CreateUser)
	admin.POST("/actualizar_usuario/:id", h.UpdateUser)
	admin.POST("/eliminar_usuario/:id", h.DeactivateUser)

	// RESOURCES
	res := auth.Group("/", middleware.RequireAction(policy.ViewResources))
	res.GET("/recursos", h.Resources)
	res.GET("/recursos/:categoria/:archivo", h.DownloadResource)

	return r
}
