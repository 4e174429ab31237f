package server

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/config"
)

// csrfKey uses CSRF_KEY when set and otherwise derives a key from the
// session secret, so restarts keep issued tokens valid.
func csrfKey(cfg *config.Config) []byte {
	if cfg.CSRFKey != "" {
		return []byte(cfg.CSRFKey)
	}
	sum := sha256.Sum256([]byte("csrf:" + cfg.SessionSecret))
	return sum[:]
}

// WithCSRF guards every unsafe request of next with a double-submit token.
// Forms carry it through the CSRFField template value.
func WithCSRF(cfg *config.Config, log logrus.FieldLogger, next http.Handler) http.Handler {
	protect := csrf.Protect(
		csrfKey(cfg),
		csrf.Secure(cfg.SecureCookies),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName("csrf_token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"reason": csrf.FailureReason(r),
			}).Warn("csrf check failed")
			http.Error(w, "Solicitud inválida, recargue la página e intente de nuevo", http.StatusForbidden)
		})),
	)(next)

	if cfg.SecureCookies {
		return protect
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protect.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
