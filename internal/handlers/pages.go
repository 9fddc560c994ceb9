package handlers

import (
	"net/http"

	"logichain-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Landing(c *gin.Context) {
	h.render(c, http.StatusOK, "landing.html", gin.H{
		"isAuthed": middleware.CurrentSession(c).Authenticated(),
	})
}

// NotFound serves /not-found and every unmatched path.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found.html", nil)
}

func (h *Handler) Forbidden(c *gin.Context) {
	h.render(c, http.StatusForbidden, "forbidden.html", nil)
}
