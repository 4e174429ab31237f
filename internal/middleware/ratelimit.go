package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/session"
)

// LoginLimiter throttles login attempts per client IP.
type LoginLimiter struct {
	rate  rate.Limit
	burst int

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	lastCleanup time.Time
}

func NewLoginLimiter(perSecond float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		rate:        rate.Limit(perSecond),
		burst:       burst,
		limiters:    map[string]*rate.Limiter{},
		lastCleanup: time.Now(),
	}
}

func (l *LoginLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// idle limiters have a full bucket; forget them every few minutes
	if time.Since(l.lastCleanup) > 5*time.Minute {
		for k, lim := range l.limiters {
			if lim.Tokens() >= float64(l.burst) {
				delete(l.limiters, k)
			}
		}
		l.lastCleanup = time.Now()
	}

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Allow reports whether another attempt from key may proceed now.
func (l *LoginLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			session.AddFlash(c, session.Danger, "Demasiados intentos. Espere unos segundos e intente de nuevo.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
