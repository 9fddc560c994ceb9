// Package routes is the static route table. Every page and form action of
// the frontend is listed here together with the roles allowed to reach it.
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"logichain-web/internal/access"
	"logichain-web/internal/models"
)

type View string

const (
	ViewLanding        View = "landing"
	ViewLogin          View = "login"
	ViewLoginSubmit    View = "login.submit"
	ViewRegister       View = "register"
	ViewRegisterSubmit View = "register.submit"
	ViewForgot         View = "forgot"
	ViewForgotSubmit   View = "forgot.submit"
	ViewForgotVerify   View = "forgot.verify"
	ViewForgotReset    View = "forgot.reset"
	ViewLogout         View = "logout"
	ViewNotFound       View = "not-found"

	ViewDashboard      View = "dashboard"
	ViewProfile        View = "profile"
	ViewProfileSubmit  View = "profile.submit"
	ViewPasswordSubmit View = "profile.password"

	ViewNewOrder       View = "customer.new-order"
	ViewNewOrderSubmit View = "customer.new-order.submit"
	ViewMyOrders       View = "customer.orders"
	ViewOrderDetails   View = "customer.order"
	ViewTrackShipment  View = "customer.track"
	ViewMyReturns      View = "customer.returns"
	ViewReturnSubmit   View = "customer.returns.submit"

	ViewInventory     View = "warehouse.inventory"
	ViewWarehouses    View = "warehouse.warehouses"
	ViewOrders        View = "warehouse.orders"
	ViewOrderStatus   View = "orders.status"
	ViewShipments     View = "warehouse.shipments"
	ViewWareProducts  View = "warehouse.products"
	ViewAllOrders     View = "support.orders"
	ViewReturns       View = "support.returns"
	ViewCustomers     View = "support.customers"
	ViewTracking      View = "support.tracking"
	ViewNotifications View = "support.notifications"

	ViewUsers             View = "admin.users"
	ViewUserDelete        View = "admin.users.delete"
	ViewAdminProducts     View = "admin.products"
	ViewAdminWarehouses   View = "admin.warehouses"
	ViewAdminOrders       View = "admin.orders"
	ViewInventoryOverview View = "admin.inventory"
	ViewCarriers          View = "admin.carriers"
	ViewSettings          View = "admin.settings"
	ViewAnalytics         View = "admin.analytics"
	ViewLogs              View = "admin.logs"

	ViewProducts View = "catalog.products"
)

// Route describes one registered method+path. Label, when set, puts the
// route in the sidebar of the roles it admits.
type Route struct {
	Method string
	Path   string
	Access access.Rule
	View   View
	Label  string
}

const (
	LoginPath    = "/login"
	NotFoundPath = "/not-found"
)

var (
	public    = access.Public()
	anyRole   = access.AnyRole()
	customer  = access.Roles(models.RoleCustomer)
	warehouse = access.Roles(models.RoleWarehouseManager, models.RoleAdmin)
	orderDesk = access.Roles(models.RoleWarehouseManager, models.RoleAdmin, models.RoleCustomerSupport)
	support   = access.Roles(models.RoleCustomerSupport, models.RoleAdmin)
	admin     = access.Roles(models.RoleAdmin)
	catalog   = access.Roles(models.RoleProductManager, models.RoleAdmin, models.RoleWarehouseManager)
)

func get(path string, rule access.Rule, view View, label string) Route {
	return Route{Method: http.MethodGet, Path: path, Access: rule, View: view, Label: label}
}

func post(path string, rule access.Rule, view View) Route {
	return Route{Method: http.MethodPost, Path: path, Access: rule, View: view}
}

// Table returns the route table. It is rebuilt on each call so callers
// cannot mutate a shared copy.
func Table() []Route {
	return []Route{
		// PUBLIC
		get("/", public, ViewLanding, ""),
		get(LoginPath, public, ViewLogin, ""),
		post(LoginPath, public, ViewLoginSubmit),
		get("/register", public, ViewRegister, ""),
		post("/register", public, ViewRegisterSubmit),
		get("/forgot-password", public, ViewForgot, ""),
		post("/forgot-password", public, ViewForgotSubmit),
		post("/forgot-password/verify", public, ViewForgotVerify),
		post("/forgot-password/reset", public, ViewForgotReset),
		post("/logout", public, ViewLogout),
		get(NotFoundPath, public, ViewNotFound, ""),

		// ANY ROLE
		get("/dashboard", anyRole, ViewDashboard, "Dashboard"),
		get("/profile", anyRole, ViewProfile, "Profile"),
		post("/profile", anyRole, ViewProfileSubmit),
		post("/profile/password", anyRole, ViewPasswordSubmit),

		// CUSTOMER
		get("/new-order", customer, ViewNewOrder, "New Order"),
		post("/new-order", customer, ViewNewOrderSubmit),
		get("/my-orders", customer, ViewMyOrders, "My Orders"),
		get("/order/:id", customer, ViewOrderDetails, ""),
		get("/track/:id", customer, ViewTrackShipment, ""),
		get("/my-returns", customer, ViewMyReturns, "My Returns"),
		post("/my-returns", customer, ViewReturnSubmit),

		// WAREHOUSE MANAGER
		get("/inventory", warehouse, ViewInventory, "Inventory"),
		get("/warehouses", warehouse, ViewWarehouses, "Warehouses"),
		get("/orders", orderDesk, ViewOrders, "Orders"),
		post("/orders/:id/status", orderDesk, ViewOrderStatus),
		get("/shipments", warehouse, ViewShipments, "Shipments"),
		get("/ware-products", warehouse, ViewWareProducts, "Warehouse Products"),

		// CUSTOMER SUPPORT
		get("/all-orders", support, ViewAllOrders, "All Orders"),
		get("/returns", support, ViewReturns, "Returns"),
		get("/customers", support, ViewCustomers, "Customers"),
		get("/tracking", support, ViewTracking, "Order Tracking"),
		get("/notifications", support, ViewNotifications, "Notifications"),

		// ADMIN
		get("/users", admin, ViewUsers, "Users"),
		post("/users/:id/delete", admin, ViewUserDelete),
		get("/admin-products", admin, ViewAdminProducts, "Products (admin)"),
		get("/admin-warehouses", admin, ViewAdminWarehouses, "Warehouses (admin)"),
		get("/admin-orders", admin, ViewAdminOrders, "Orders (admin)"),
		get("/inventory-overview", admin, ViewInventoryOverview, "Inventory Overview"),
		get("/carriers", admin, ViewCarriers, "Carriers"),
		get("/settings", admin, ViewSettings, "Settings"),
		get("/analytics", admin, ViewAnalytics, "Analytics"),
		get("/logs", admin, ViewLogs, "Logs"),

		// PRODUCT MANAGER
		get("/products", catalog, ViewProducts, "Products"),
	}
}

// Validate checks the invariants the router relies on.
func Validate(table []Route) error {
	seen := make(map[string]struct{}, len(table))
	for _, r := range table {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("route %s %q: path must start with /", r.Method, r.Path)
		}
		if r.View == "" {
			return fmt.Errorf("route %s %s: no view", r.Method, r.Path)
		}
		if r.Access.Empty() {
			return fmt.Errorf("route %s %s: protected route admits no role", r.Method, r.Path)
		}
		key := r.Method + " " + r.Path
		if _, dup := seen[key]; dup {
			return fmt.Errorf("route %s registered twice", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Navigation lists the labelled pages a role may open, in table order.
func Navigation(table []Route, role models.Role) []Route {
	var out []Route
	for _, r := range table {
		if r.Method != http.MethodGet || r.Label == "" || r.Access.IsPublic() {
			continue
		}
		if r.Access.Allows(role) {
			out = append(out, r)
		}
	}
	return out
}
