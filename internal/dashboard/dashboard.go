// Package dashboard picks the dashboard variant of a role and gathers the
// figures it shows.
package dashboard

import "logichain-web/internal/models"

type Variant int

const (
	Admin Variant = iota + 1
	WarehouseManager
	CustomerSupport
	Customer
	ProductManager
)

var variants = map[models.Role]Variant{
	models.RoleAdmin:            Admin,
	models.RoleWarehouseManager: WarehouseManager,
	models.RoleCustomerSupport:  CustomerSupport,
	models.RoleCustomer:         Customer,
	models.RoleProductManager:   ProductManager,
}

// Resolve maps a role to its dashboard. The role comes from the session
// cookie, so anything outside the five known roles reports false.
func Resolve(role models.Role) (Variant, bool) {
	v, ok := variants[role]
	return v, ok
}

func (v Variant) String() string {
	switch v {
	case Admin:
		return "admin"
	case WarehouseManager:
		return "warehouse"
	case CustomerSupport:
		return "support"
	case Customer:
		return "customer"
	case ProductManager:
		return "product"
	default:
		return "unknown"
	}
}

func (v Variant) Title() string {
	switch v {
	case Admin:
		return "Admin Dashboard"
	case WarehouseManager:
		return "Warehouse Dashboard"
	case CustomerSupport:
		return "Support Dashboard"
	case Customer:
		return "My Dashboard"
	case ProductManager:
		return "Product Dashboard"
	default:
		return "Dashboard"
	}
}

// Template is the HTML template rendered for the variant.
func (v Variant) Template() string {
	return "dashboard_" + v.String() + ".html"
}
