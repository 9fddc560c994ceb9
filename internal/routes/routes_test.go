package routes

import (
	"net/http"
	"testing"

	"logichain-web/internal/access"
	"logichain-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, method, path string) Route {
	t.Helper()
	for _, r := range Table() {
		if r.Method == method && r.Path == path {
			return r
		}
	}
	t.Fatalf("route %s %s not in table", method, path)
	return Route{}
}

func TestTableIsValid(t *testing.T) {
	require.NoError(t, Validate(Table()))
}

func TestValidateRejectsBrokenRoutes(t *testing.T) {
	tests := []struct {
		name  string
		table []Route
	}{
		{"relative path", []Route{get("dashboard", anyRole, ViewDashboard, "")}},
		{"no view", []Route{get("/x", anyRole, "", "")}},
		{"empty role set", []Route{get("/x", access.Roles(), ViewUsers, "")}},
		{"duplicate", []Route{get("/x", public, ViewLanding, ""), get("/x", admin, ViewUsers, "")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.table))
		})
	}
}

func TestRoutingSurface(t *testing.T) {
	tests := []struct {
		path    string
		allowed []models.Role
	}{
		{"/my-orders", []models.Role{models.RoleCustomer}},
		{"/order/:id", []models.Role{models.RoleCustomer}},
		{"/inventory", []models.Role{models.RoleWarehouseManager, models.RoleAdmin}},
		{"/orders", []models.Role{models.RoleWarehouseManager, models.RoleAdmin, models.RoleCustomerSupport}},
		{"/returns", []models.Role{models.RoleCustomerSupport, models.RoleAdmin}},
		{"/users", []models.Role{models.RoleAdmin}},
		{"/logs", []models.Role{models.RoleAdmin}},
		{"/products", []models.Role{models.RoleProductManager, models.RoleAdmin, models.RoleWarehouseManager}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := find(t, http.MethodGet, tt.path)
			allowed := make(map[models.Role]bool)
			for _, role := range tt.allowed {
				allowed[role] = true
			}
			for _, role := range models.AllRoles {
				assert.Equal(t, allowed[role], r.Access.Allows(role), "%s for %s", tt.path, role)
			}
		})
	}
}

func TestPublicAndAnyRoleRoutes(t *testing.T) {
	for _, path := range []string{"/", "/login", "/register", "/forgot-password"} {
		assert.True(t, find(t, http.MethodGet, path).Access.IsPublic(), path)
	}
	for _, path := range []string{"/dashboard", "/profile"} {
		assert.True(t, find(t, http.MethodGet, path).Access.IsAnyRole(), path)
	}
}

func TestFormActionsShareTheirPageRules(t *testing.T) {
	assert.Equal(t, find(t, http.MethodGet, "/orders").Access, find(t, http.MethodPost, "/orders/:id/status").Access)
	assert.Equal(t, find(t, http.MethodGet, "/users").Access, find(t, http.MethodPost, "/users/:id/delete").Access)
	assert.Equal(t, find(t, http.MethodGet, "/my-returns").Access, find(t, http.MethodPost, "/my-returns").Access)
}

func TestNavigationPerRole(t *testing.T) {
	labels := func(role models.Role) []string {
		var out []string
		for _, r := range Navigation(Table(), role) {
			out = append(out, r.Label)
		}
		return out
	}

	customer := labels(models.RoleCustomer)
	assert.Contains(t, customer, "My Orders")
	assert.NotContains(t, customer, "Users")

	admin := labels(models.RoleAdmin)
	assert.Contains(t, admin, "Users")
	assert.NotContains(t, admin, "My Orders")

	assert.Equal(t, []string{"Dashboard", "Profile"}, labels("UNKNOWN"))
}

func TestStateChangingViewsArePostOnly(t *testing.T) {
	find(t, http.MethodPost, "/logout")
	for _, r := range Table() {
		if r.View == ViewLogout {
			assert.Equal(t, http.MethodPost, r.Method, r.Path)
		}
	}
}
