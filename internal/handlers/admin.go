package handlers

import (
	"net/http"
	"sort"

	"logichain-web/internal/middleware"
	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

//
// USERS
//

func (h *Handler) Users(c *gin.Context) {
	env, err := h.api.Users.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load users") {
		return
	}

	self := middleware.CurrentSession(c).Principal.ID
	t := newTable("Users", "No users.", "Username", "Email", "Role", "Approval", "Active")
	for _, u := range env.Data {
		active := "no"
		if u.Active {
			active = "yes"
		}
		row := t.add("", orDash(u.Username), orDash(u.Email), u.Role.Label(), orDash(u.ApprovalStatus), active)
		if u.ID != self {
			row.Actions = append(row.Actions, Action{
				Label:   "Delete",
				Path:    "/users/" + num(u.ID) + "/delete",
				Confirm: "Delete " + u.Username + "?",
			})
		}
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c.Param("id"))
	if !ok {
		h.flash(c, session.NoticeError, "User not found")
		h.redirect(c, "/users")
		return
	}
	if id == middleware.CurrentSession(c).Principal.ID {
		h.flash(c, session.NoticeError, "You cannot delete your own account")
		h.redirect(c, "/users")
		return
	}

	if _, err := h.api.Users.Delete(c.Request.Context(), id); err != nil {
		if h.apiFailed(c, err, "Failed to delete user") {
			return
		}
		h.redirect(c, "/users")
		return
	}

	h.flash(c, session.NoticeSuccess, "User deleted")
	h.redirect(c, "/users")
}

//
// CATALOG, STOCK, CARRIERS
//

func (h *Handler) AdminProducts(c *gin.Context) {
	env, err := h.api.Products.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load products") {
		return
	}
	t := productTable("Products (admin)", env.Data, "")
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

// InventoryOverview totals the stock of each warehouse.
func (h *Handler) InventoryOverview(c *gin.Context) {
	var (
		items      []models.InventoryItem
		warehouses []models.Warehouse
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		env, err := h.api.Inventory.List(ctx)
		items = env.Data
		return err
	})
	g.Go(func() error {
		env, err := h.api.Warehouses.List(ctx)
		warehouses = env.Data
		return err
	})
	if err := g.Wait(); err != nil && h.apiFailed(c, err, "Failed to load inventory") {
		return
	}

	type totals struct{ qty, reserved, low int }
	per := make(map[int64]*totals, len(warehouses))
	for _, it := range items {
		t := per[it.WarehouseID]
		if t == nil {
			t = &totals{}
			per[it.WarehouseID] = t
		}
		t.qty += it.Quantity
		t.reserved += it.ReservedQuantity
		if it.Available() < lowStockThreshold {
			t.low++
		}
	}

	t := newTable("Inventory Overview", "No warehouses.", "Warehouse", "Location", "Capacity", "Stock", "Reserved", "Low stock lines")
	for _, w := range warehouses {
		tot := per[w.ID]
		if tot == nil {
			tot = &totals{}
		}
		t.add("", orDash(w.Name), orDash(w.Location), num(w.Capacity), num(tot.qty), num(tot.reserved), num(tot.low))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

func (h *Handler) Carriers(c *gin.Context) {
	env, err := h.api.Carriers.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load carriers") {
		return
	}

	t := newTable("Carriers", "No carriers.", "Code", "Name", "Contact")
	for _, cr := range env.Data {
		t.add("", orDash(cr.CarrierCode), orDash(cr.CarrierName), orDash(cr.ContactEmail))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

func (h *Handler) ShowSettings(c *gin.Context) {
	h.render(c, http.StatusOK, "settings.html", gin.H{
		"Title":    "Settings",
		"settings": h.settings,
	})
}

//
// ANALYTICS
//

type statusCount struct {
	Status models.OrderStatus
	Count  int
	Amount string
}

// Analytics aggregates the raw listings: orders by status, revenue and a
// sortable, filterable order table.
func (h *Handler) Analytics(c *gin.Context) {
	var (
		orders     []models.Order
		products   []models.Product
		warehouses []models.Warehouse
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		env, err := h.api.Orders.List(ctx)
		orders = env.Data
		return err
	})
	g.Go(func() error {
		env, err := h.api.Products.List(ctx)
		products = env.Data
		return err
	})
	g.Go(func() error {
		env, err := h.api.Warehouses.List(ctx)
		warehouses = env.Data
		return err
	})
	if err := g.Wait(); err != nil && h.apiFailed(c, err, "Failed to load analytics") {
		return
	}

	byStatus := make([]statusCount, 0, len(models.OrderStatuses))
	var revenue float64
	for _, st := range models.OrderStatuses {
		sc := statusCount{Status: st}
		var amount float64
		for _, o := range orders {
			if o.OrderStatus == st {
				sc.Count++
				amount += o.TotalAmount
			}
		}
		sc.Amount = money(amount)
		if st != models.OrderCancelled {
			revenue += amount
		}
		byStatus = append(byStatus, sc)
	}

	filtered := filterOrders(orders, models.OrderStatus(c.Query("status")))
	sortOrders(filtered, c.Query("sort"))
	t := newTable("Orders", "No orders match.", "Order", "Date", "Status", "Total")
	for _, o := range filtered {
		t.add("", orDash(o.OrderNumber), day(o.OrderDate), string(o.OrderStatus), money(o.TotalAmount))
	}

	h.render(c, http.StatusOK, "analytics.html", gin.H{
		"Title":      "Analytics",
		"byStatus":   byStatus,
		"revenue":    money(revenue),
		"orders":     len(orders),
		"products":   len(products),
		"warehouses": len(warehouses),
		"table":      t,
		"statuses":   models.OrderStatuses,
		"filter":     c.Query("status"),
		"sort":       c.Query("sort"),
	})
}

// sortOrders orders by "amount" or "date", newest or largest first.
// Anything else keeps the API order.
func sortOrders(orders []models.Order, key string) {
	switch key {
	case "amount":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].TotalAmount > orders[j].TotalAmount })
	case "date":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate > orders[j].OrderDate })
	}
}
