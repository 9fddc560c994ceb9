package handlers

import (
	"context"
	"net/http"

	"logichain-web/internal/models"

	"github.com/gin-gonic/gin"
)

type auditReader interface {
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

const auditPageSize = 200

// Logs shows the API's application log and, when the audit trail is
// enabled, the recent sign-in and access events of this frontend.
func (h *Handler) Logs(c *gin.Context) {
	ctx := c.Request.Context()
	env, err := h.api.Logs.List(ctx)
	if err != nil && h.apiFailed(c, err, "Failed to load logs") {
		return
	}

	t := newTable("Logs", "No log entries.", "Time", "Level", "Source", "Message")
	for _, e := range env.Data {
		t.add("", orDash(e.Timestamp), orDash(e.Level), orDash(e.Source), orDash(e.Message))
	}
	data := gin.H{"Title": t.Title, "table": t}

	if r, ok := h.audit.(auditReader); ok {
		rows, err := r.Recent(ctx, auditPageSize)
		if err != nil {
			h.log.Warn("read audit trail failed", "error", err)
		} else {
			at := newTable("Access audit", "No audit events.", "Time", "User", "Role", "Action", "Path", "Outcome")
			for _, a := range rows {
				at.add("", a.CreatedAt.Format("2006-01-02 15:04:05"), orDash(a.Username), orDash(a.Role), a.Action, orDash(a.Path), a.Outcome)
			}
			data["detail"] = at
		}
	}
	h.render(c, http.StatusOK, "list.html", data)
}
