// Package session keeps the cookie session keys and flash messages in one
// place.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "ugel_session"
	userIDKey  = "user_id"
)

// Flash kinds double as Bootstrap alert classes in the templates.
const (
	Success = "success"
	Danger  = "danger"
)

type Flash struct {
	Kind string
	Text string
}

// UserID returns the logged-in user id, if any.
func UserID(c *gin.Context) (uint, bool) {
	id, ok := sessions.Default(c).Get(userIDKey).(uint)
	return id, ok && id > 0
}

// Login starts a fresh session for userID.
func Login(c *gin.Context, userID uint) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(userIDKey, userID)
	return sess.Save()
}

func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, kind, text string) {
	sess := sessions.Default(c)
	sess.AddFlash(text, kind)
	_ = sess.Save()
}

// PopFlashes drains the queued messages. It must run before the response
// body is written so the updated cookie goes out.
func PopFlashes(c *gin.Context) []Flash {
	sess := sessions.Default(c)
	var out []Flash
	for _, kind := range []string{Danger, Success} {
		for _, v := range sess.Flashes(kind) {
			if text, ok := v.(string); ok {
				out = append(out, Flash{Kind: kind, Text: text})
			}
		}
	}
	if len(out) > 0 {
		_ = sess.Save()
	}
	return out
}
