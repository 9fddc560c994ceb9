package middleware

import (
	"net/http"

	"logichain-web/internal/access"
	"logichain-web/internal/audit"
	"logichain-web/internal/metrics"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

const decisionKey = "Decision"

type Targets struct {
	Login    string
	NotFound string
}

type GuardConfig struct {
	Policy   access.Policy
	Sessions session.Provider
	Targets  Targets
	Audit    audit.Recorder
	Metrics  *metrics.Metrics
	// Forbidden renders the 403 page under access.DenyForbidden.
	Forbidden gin.HandlerFunc
}

// Guard runs the access policy before the view of a route. The decision
// is taken on every request; nothing is remembered between navigations.
func Guard(rule access.Rule, cfg GuardConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := LoadSession(c, cfg.Sessions)
		d := cfg.Policy.Decide(s, rule)
		c.Set(decisionKey, d)
		if cfg.Metrics != nil {
			cfg.Metrics.GuardDecisions.WithLabelValues(c.FullPath(), d.String()).Inc()
		}

		switch d {
		case access.Render:
			c.Next()
			return
		case access.RedirectToLogin:
			c.Redirect(http.StatusFound, cfg.Targets.Login)
		case access.RedirectToNotFound:
			cfg.deny(c, s, d)
			c.Redirect(http.StatusFound, cfg.Targets.NotFound)
		default:
			cfg.deny(c, s, d)
			if cfg.Forbidden != nil {
				cfg.Forbidden(c)
			} else {
				c.String(http.StatusForbidden, "access denied")
			}
		}
		c.Abort()
	}
}

func (cfg GuardConfig) deny(c *gin.Context, s session.Session, d access.Decision) {
	if cfg.Audit == nil {
		return
	}
	e := audit.Entry(s, audit.ActionDeny, c.Request.URL.Path, audit.OutcomeFailure, d.String())
	e.RequestID = RequestID(c)
	cfg.Audit.Record(c.Request.Context(), e)
}

// DecisionOf reports the guard decision taken for this request, if any.
func DecisionOf(c *gin.Context) (access.Decision, bool) {
	v, ok := c.Get(decisionKey)
	if !ok {
		return 0, false
	}
	d, ok := v.(access.Decision)
	return d, ok
}
