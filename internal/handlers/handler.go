package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/metrics"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/middleware"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/resources"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/users"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/visits"
)

// Handler serves every page of the app.
type Handler struct {
	db        *gorm.DB
	users     *users.Store
	visits    *visits.Store
	resources *resources.Library
	metrics   *metrics.Metrics
	log       logrus.FieldLogger
	now       func() time.Time
}

type Deps struct {
	DB        *gorm.DB
	Users     *users.Store
	Visits    *visits.Store
	Resources *resources.Library
	Metrics   *metrics.Metrics
	Log       logrus.FieldLogger
	Now       func() time.Time // defaults to time.Now
}

func New(d Deps) *Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{
		db:        d.DB,
		users:     d.Users,
		visits:    d.Visits,
		resources: d.Resources,
		metrics:   d.Metrics,
		log:       d.Log,
		now:       d.Now,
	}
}

func (h *Handler) logger(c *gin.Context) logrus.FieldLogger {
	return middleware.Logger(c, h.log)
}

// viewer is the visibility scope of the logged-in user. Routes using it sit
// behind RequireAuth.
func viewer(c *gin.Context) visits.Viewer {
	u, _ := middleware.CurrentUser(c)
	return visits.Viewer{UserID: u.ID, Role: u.Role}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
