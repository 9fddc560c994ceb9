package handlers

import (
	"context"
	"errors"
	"net/http"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/middleware"
	"logichain-web/internal/routes"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and passes the principal, the sidebar and pending
// notices to every template. Nothing is written once the request is gone.
func (h *Handler) render(c *gin.Context, status int, tmpl string, data gin.H) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	if data == nil {
		data = gin.H{}
	}

	s := middleware.CurrentSession(c)
	if s.Authenticated() {
		data["CurrentUser"] = s.Principal
		data["CurrentUsername"] = s.Principal.Username
		data["CurrentUserRole"] = s.Principal.Role.Label()
		data["Nav"] = routes.Navigation(h.table, s.Principal.Role)
	}
	data["CurrentPath"] = c.Request.URL.Path
	data["Notices"] = h.flashes(c)

	c.HTML(status, tmpl, data)
}

func (h *Handler) redirect(c *gin.Context, to string) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, to)
}

func (h *Handler) flash(c *gin.Context, kind, msg string) {
	f, ok := h.sessions(c).(session.Flasher)
	if !ok {
		return
	}
	if err := f.AddFlash(kind, msg); err != nil {
		h.log.Warn("flash failed", "error", err)
	}
}

func (h *Handler) flashes(c *gin.Context) []session.Notice {
	f, ok := h.sessions(c).(session.Flasher)
	if !ok {
		return nil
	}
	return f.Flashes()
}

// apiFailed reports an API error to the user. It returns true when the
// response is already settled (stale request or forced logout) and the
// caller must stop; otherwise the caller renders its empty state.
func (h *Handler) apiFailed(c *gin.Context, err error, fallback string) bool {
	ctx := c.Request.Context()
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		c.Abort()
		return true
	}

	h.log.Warn("api call failed",
		"request_id", middleware.RequestID(c),
		"path", c.Request.URL.Path,
		"status", apiclient.StatusOf(err),
		"error", err,
	)

	if h.settings.ClearOnUnauthorized && apiclient.IsUnauthorized(err) {
		s := middleware.CurrentSession(c)
		if cerr := h.sessions(c).Clear(); cerr != nil {
			h.log.Error("clear session failed", "error", cerr)
		}
		middleware.ResetSession(c)
		e := audit.Entry(s, audit.ActionExpired, c.Request.URL.Path, audit.OutcomeFailure, "api answered 401")
		e.RequestID = middleware.RequestID(c)
		h.audit.Record(ctx, e)
		h.flash(c, session.NoticeInfo, "Your session has expired. Please log in again.")
		h.redirect(c, routes.LoginPath)
		c.Abort()
		return true
	}

	h.flash(c, session.NoticeError, apiclient.MessageOf(err, fallback))
	return false
}

func (h *Handler) record(c *gin.Context, s session.Session, action, outcome, details string) {
	e := audit.Entry(s, action, c.Request.URL.Path, outcome, details)
	e.RequestID = middleware.RequestID(c)
	h.audit.Record(c.Request.Context(), e)
}
