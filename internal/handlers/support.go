package handlers

import (
	"net/http"
	"strings"

	"logichain-web/internal/middleware"
	"logichain-web/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) AllOrders(c *gin.Context) {
	env, err := h.api.Orders.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load orders") {
		return
	}
	orders := filterOrders(env.Data, models.OrderStatus(c.Query("status")))

	h.render(c, http.StatusOK, "orders.html", gin.H{
		"Title":    "All Orders",
		"orders":   orders,
		"statuses": models.OrderStatuses,
		"filter":   c.Query("status"),
		"returnTo": "/all-orders",
	})
}

func (h *Handler) Returns(c *gin.Context) {
	env, err := h.api.Returns.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load returns") {
		return
	}

	t := newTable("Returns", "No returns.", "Return", "Order", "Status", "Reason", "Refund", "Requested")
	for _, r := range env.Data {
		t.add("", orDash(r.ReturnNumber), num(r.OrderID), orDash(r.ReturnStatus), orDash(r.Reason), money(r.RefundAmount), day(r.RequestedAt))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

func (h *Handler) Customers(c *gin.Context) {
	env, err := h.api.Users.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load customers") {
		return
	}

	admin := middleware.CurrentSession(c).Principal.Role == models.RoleAdmin
	t := newTable("Customers", "No customers.", "Username", "Email", "Phone", "Joined")
	for _, u := range env.Data {
		if u.Role != models.RoleCustomer {
			continue
		}
		email, phone := contactCells(u, admin)
		t.add("", orDash(u.Username), email, phone, day(u.CreatedAt))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

// Tracking looks a shipment up by the ?tracking= query.
func (h *Handler) Tracking(c *gin.Context) {
	tracking := strings.TrimSpace(c.Query("tracking"))
	data := gin.H{"Title": "Order Tracking", "tracking": tracking, "search": true}

	if tracking != "" {
		env, err := h.api.Shipments.Track(c.Request.Context(), tracking)
		if err != nil {
			if h.apiFailed(c, err, "Shipment not found") {
				return
			}
		} else {
			data["shipment"] = env.Data
			data["found"] = true
		}
	}
	h.render(c, http.StatusOK, "track.html", data)
}

// Notifications lists what support should look at: pending orders and
// open return requests.
func (h *Handler) Notifications(c *gin.Context) {
	var (
		orders  []models.Order
		returns []models.Return
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		env, err := h.api.Orders.List(ctx)
		orders = env.Data
		return err
	})
	g.Go(func() error {
		env, err := h.api.Returns.List(ctx)
		returns = env.Data
		return err
	})
	if err := g.Wait(); err != nil && h.apiFailed(c, err, "Failed to load notifications") {
		return
	}

	t := newTable("Notifications", "Nothing needs attention.", "Kind", "Reference", "Detail")
	for _, o := range filterOrders(orders, models.OrderPending) {
		t.add("", "Pending order", orDash(o.OrderNumber), money(o.TotalAmount))
	}
	for _, r := range returns {
		if r.ReturnStatus == models.ReturnRequested {
			t.add("", "Return request", orDash(r.ReturnNumber), orDash(r.Reason))
		}
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}
