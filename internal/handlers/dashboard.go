package handlers

import (
	"net/http"

	"logichain-web/internal/dashboard"
	"logichain-web/internal/middleware"
	"logichain-web/internal/routes"

	"github.com/gin-gonic/gin"
)

// Dashboard renders the variant of the signed-in role. A role outside the
// known five is sent back to the login page.
func (h *Handler) Dashboard(c *gin.Context) {
	s := middleware.CurrentSession(c)
	v, ok := dashboard.Resolve(s.Principal.Role)
	if !ok {
		h.redirect(c, routes.LoginPath)
		return
	}

	summary, err := h.loader.Load(c.Request.Context(), v, s.Principal)
	if err != nil {
		if h.apiFailed(c, err, "Failed to load dashboard data") {
			return
		}
		summary = dashboard.Summary{Variant: v}
	}

	h.render(c, http.StatusOK, v.Template(), gin.H{
		"Title":   v.Title(),
		"summary": summary,
	})
}
