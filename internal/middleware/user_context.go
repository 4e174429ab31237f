package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
)

const currentUserKey = "CurrentUser"

type UserLoader interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// InjectUser loads the session's user on every request. A session pointing
// at a missing or deactivated account is dropped.
func InjectUser(users UserLoader, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := session.UserID(c); ok {
			user, err := users.Get(c.Request.Context(), uid)
			switch {
			case err == nil && user.Active:
				c.Set(currentUserKey, user)
			case err == nil:
				log.WithField("user_id", uid).Info("dropping session of inactive user")
				_ = session.Logout(c)
			default:
				log.WithError(err).WithField("user_id", uid).Warn("dropping session")
				_ = session.Logout(c)
			}
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
