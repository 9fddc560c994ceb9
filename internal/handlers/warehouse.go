package handlers

import (
	"net/http"
	"sort"

	"logichain-web/internal/middleware"
	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

const lowStockThreshold = 10

func (h *Handler) Inventory(c *gin.Context) {
	ctx := c.Request.Context()
	env, err := h.api.Inventory.List(ctx)
	if err != nil && h.apiFailed(c, err, "Failed to load inventory") {
		return
	}

	t := newTable("Inventory", "No inventory records.", "Product", "Warehouse", "Quantity", "Reserved", "Available", "")
	for _, it := range env.Data {
		flag := ""
		if it.Available() < lowStockThreshold {
			flag = "LOW"
		}
		t.add("", orDash(it.ProductName), orDash(it.WarehouseName), num(it.Quantity), num(it.ReservedQuantity), num(it.Available()), flag)
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

// Warehouses serves both the warehouse manager and the admin listing.
func (h *Handler) Warehouses(c *gin.Context) {
	env, err := h.api.Warehouses.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load warehouses") {
		return
	}

	t := newTable("Warehouses", "No warehouses.", "Code", "Name", "Location", "Capacity")
	for _, w := range env.Data {
		t.add("", orDash(w.Code), orDash(w.Name), orDash(w.Location), num(w.Capacity))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

//
// ORDERS AND STATUS CHANGES
//

func (h *Handler) Orders(c *gin.Context) {
	h.renderOrderDesk(c, "Orders", "/orders")
}

func (h *Handler) AdminOrders(c *gin.Context) {
	h.renderOrderDesk(c, "Orders (admin)", "/admin-orders")
}

func (h *Handler) renderOrderDesk(c *gin.Context, title, self string) {
	env, err := h.api.Orders.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load orders") {
		return
	}
	orders := filterOrders(env.Data, models.OrderStatus(c.Query("status")))

	h.render(c, http.StatusOK, "orders.html", gin.H{
		"Title":    title,
		"orders":   orders,
		"statuses": models.OrderStatuses,
		"filter":   c.Query("status"),
		"returnTo": self,
	})
}

func filterOrders(orders []models.Order, status models.OrderStatus) []models.Order {
	if !status.Valid() {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderStatus == status {
			out = append(out, o)
		}
	}
	return out
}

// order desks a status form may send the user back to
var statusReturnPaths = map[string]bool{
	"/orders":       true,
	"/admin-orders": true,
	"/all-orders":   true,
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	back := c.PostForm("return_to")
	if !statusReturnPaths[back] {
		back = "/orders"
	}

	id, ok := pathID(c.Param("id"))
	status := models.OrderStatus(c.PostForm("status"))
	if !ok || !status.Valid() {
		h.flash(c, session.NoticeError, "Invalid order status")
		h.redirect(c, back)
		return
	}

	if _, err := h.api.Orders.UpdateStatus(c.Request.Context(), id, status); err != nil {
		if h.apiFailed(c, err, "Failed to update order status") {
			return
		}
		h.redirect(c, back)
		return
	}

	h.flash(c, session.NoticeSuccess, "Order status updated to "+string(status))
	h.redirect(c, back)
}

func (h *Handler) Shipments(c *gin.Context) {
	env, err := h.api.Shipments.List(c.Request.Context())
	if err != nil && h.apiFailed(c, err, "Failed to load shipments") {
		return
	}

	t := newTable("Shipments", "No shipments.", "Tracking", "Order", "Carrier", "Status", "Location", "ETA")
	for _, s := range env.Data {
		carrier := "-"
		if s.Carrier != nil {
			carrier = s.Carrier.CarrierName
		}
		t.add("", orDash(s.TrackingNumber), num(s.OrderID), carrier, string(s.ShipmentStatus), orDash(s.CurrentLocation), day(s.EstimatedDeliveryDate))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

// WareProducts lists the catalog; ?product=<id> adds the stock of that
// product per warehouse.
func (h *Handler) WareProducts(c *gin.Context) {
	ctx := c.Request.Context()
	env, err := h.api.Products.List(ctx)
	if err != nil && h.apiFailed(c, err, "Failed to load products") {
		return
	}

	t := productTable("Warehouse Products", env.Data, "/ware-products?product=")
	data := gin.H{"Title": t.Title, "table": t}

	if id, ok := pathID(c.Query("product")); ok {
		stock, err := h.api.Inventory.ByProduct(ctx, id)
		if err != nil {
			if h.apiFailed(c, err, "Failed to load stock") {
				return
			}
		} else {
			st := newTable("Stock by warehouse", "Not stocked anywhere.", "Warehouse", "Quantity", "Reserved", "Available")
			for _, it := range stock.Data {
				st.add("", orDash(it.WarehouseName), num(it.Quantity), num(it.ReservedQuantity), num(it.Available()))
			}
			data["detail"] = st
		}
	}
	h.render(c, http.StatusOK, "list.html", data)
}

func productTable(title string, products []models.Product, linkPrefix string) Table {
	sorted := append([]models.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	t := newTable(title, "No products.", "SKU", "Name", "Category", "Price", "Available", "Reserved")
	for _, p := range sorted {
		link := ""
		if linkPrefix != "" {
			link = linkPrefix + num(p.ID)
		}
		t.add(link, orDash(p.SKU), orDash(p.Name), orDash(p.Category), money(p.Price), num(p.AvailableStock), num(p.ReservedStock))
	}
	return t
}

//
// CATALOG
//

// Products shows product managers their own catalog and everyone else the
// full one.
func (h *Handler) Products(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.CurrentSession(c).Principal

	title := "Products"
	var (
		products []models.Product
		err      error
	)
	if p.Role == models.RoleProductManager {
		title = "My Products"
		env, e := h.api.Products.Mine(ctx)
		products, err = env.Data, e
	} else {
		env, e := h.api.Products.List(ctx)
		products, err = env.Data, e
	}
	if err != nil && h.apiFailed(c, err, "Failed to load products") {
		return
	}

	t := productTable(title, products, "")
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}
