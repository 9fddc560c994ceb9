package server

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"logichain-web/internal/access"
	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/config"
	"logichain-web/internal/handlers"
	"logichain-web/internal/metrics"
	"logichain-web/internal/middleware"
	"logichain-web/internal/routes"
	"logichain-web/internal/session"
	"logichain-web/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Config *config.Config
	API    *apiclient.Client
	// Backend is the cookie store behind session.FromGin. When nil,
	// Sessions must be set.
	Backend  sessions.Store
	Sessions session.Provider
	Audit    audit.Recorder
	Metrics  *metrics.Metrics
	Log      *slog.Logger
}

// rate limited form posts
var authPosts = map[routes.View]bool{
	routes.ViewLoginSubmit:    true,
	routes.ViewRegisterSubmit: true,
	routes.ViewForgotSubmit:   true,
	routes.ViewForgotVerify:   true,
	routes.ViewForgotReset:    true,
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

// NewRouter registers every route of the table behind its guard.
func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Audit == nil {
		d.Audit = audit.Nop{}
	}
	if d.Sessions == nil {
		if d.Backend == nil {
			return nil, fmt.Errorf("router needs a session backend or provider")
		}
		d.Sessions = session.FromGin
	}

	table := routes.Table()
	if err := routes.Validate(table); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.WithRequestID())
	r.Use(middleware.Logger(d.Log, d.Metrics))

	tmpl, err := web.Templates(template.FuncMap{"money": money})
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	// HEALTHCHECK / METRICS
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	if d.Backend != nil {
		r.Use(sessions.Sessions(cfg.SessionCookieName, d.Backend))
	}
	r.Use(middleware.InjectSession(d.Sessions))

	h := handlers.New(handlers.Deps{
		API:      d.API,
		Sessions: d.Sessions,
		Audit:    d.Audit,
		Log:      d.Log,
		Table:    table,
		Settings: handlers.Settings{
			APIBaseURL:          d.API.BaseURL(),
			DenyMode:            cfg.DenyMode.String(),
			ClearOnUnauthorized: cfg.ClearOnUnauthorized,
			AuditEnabled:        auditEnabled(d.Audit),
		},
	})
	views := h.Views()

	guard := middleware.GuardConfig{
		Policy:    access.Policy{Deny: cfg.DenyMode},
		Sessions:  d.Sessions,
		Targets:   middleware.Targets{Login: routes.LoginPath, NotFound: routes.NotFoundPath},
		Audit:     d.Audit,
		Metrics:   d.Metrics,
		Forbidden: h.Forbidden,
	}
	limiter := middleware.PerMinute(cfg.AuthAttemptsPerMinute)

	for _, rt := range table {
		view, ok := views[rt.View]
		if !ok {
			return nil, fmt.Errorf("route %s %s: no handler for view %q", rt.Method, rt.Path, rt.View)
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if authPosts[rt.View] {
			chain = append(chain, middleware.RateLimit(limiter, d.Metrics))
		}
		chain = append(chain, middleware.Guard(rt.Access, guard), view)
		r.Handle(rt.Method, rt.Path, chain...)
	}

	r.NoRoute(h.NotFound)

	return r, nil
}

func auditEnabled(rec audit.Recorder) bool {
	switch rec.(type) {
	case nil, audit.Nop, *audit.Nop:
		return false
	}
	return true
}
