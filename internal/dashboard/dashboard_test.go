package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCoversEveryRole(t *testing.T) {
	seen := make(map[Variant]bool)
	for _, role := range models.AllRoles {
		v, ok := Resolve(role)
		require.True(t, ok, role)
		assert.False(t, seen[v], "variant %s reused", v)
		seen[v] = true
	}
	assert.Len(t, seen, 5)

	want := map[models.Role]Variant{
		models.RoleAdmin:            Admin,
		models.RoleWarehouseManager: WarehouseManager,
		models.RoleCustomerSupport:  CustomerSupport,
		models.RoleCustomer:         Customer,
		models.RoleProductManager:   ProductManager,
	}
	for role, v := range want {
		got, _ := Resolve(role)
		assert.Equal(t, v, got)
	}
}

func TestResolveFailsSafe(t *testing.T) {
	for _, role := range []models.Role{"", "admin", "ROOT", "CUSTOMER "} {
		v, ok := Resolve(role)
		assert.False(t, ok, "%q", role)
		assert.Zero(t, v)
	}
}

func TestTemplateNames(t *testing.T) {
	assert.Equal(t, "dashboard_admin.html", Admin.Template())
	assert.Equal(t, "dashboard_customer.html", Customer.Template())
	assert.Equal(t, "Dashboard", Variant(0).Title())
}

func fakeAPI(t *testing.T, bodies map[string]string) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"success":false,"message":"boom"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := apiclient.New(srv.URL, apiclient.StaticToken("abc"))
	require.NoError(t, err)
	return c
}

func statValue(t *testing.T, s Summary, label string) string {
	t.Helper()
	for _, st := range s.Stats {
		if st.Label == label {
			return st.Value
		}
	}
	t.Fatalf("no stat %q in %+v", label, s.Stats)
	return ""
}

func TestAdminSummary(t *testing.T) {
	api := fakeAPI(t, map[string]string{
		"/users":               `{"success":true,"data":[{"id":1,"role":"ADMIN"},{"id":2,"role":"CUSTOMER"}]}`,
		"/orders":              `{"success":true,"data":[{"id":1,"orderStatus":"PENDING","totalAmount":10},{"id":2,"orderStatus":"CANCELLED","totalAmount":99},{"id":3,"orderStatus":"DELIVERED","totalAmount":5.5}]}`,
		"/inventory/low-stock": `{"success":true,"data":[{"id":4,"quantity":1}]}`,
		"/shipments":           `{"success":true,"data":[{"id":1,"shipmentStatus":"IN_TRANSIT"},{"id":2,"shipmentStatus":"DELIVERED"}]}`,
		"/warehouses":          `{"success":true,"data":[{"id":1},{"id":2},{"id":3}]}`,
	})

	s, err := NewLoader(api).Load(context.Background(), Admin, models.Principal{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "2", statValue(t, s, "Users"))
	assert.Equal(t, "1", statValue(t, s, "Pending orders"))
	assert.Equal(t, "$15.50", statValue(t, s, "Revenue"))
	assert.Equal(t, "1", statValue(t, s, "Shipments in transit"))
	assert.Equal(t, "3", statValue(t, s, "Warehouses"))
	require.Len(t, s.RecentOrders, 3)
	assert.Equal(t, int64(3), s.RecentOrders[0].ID)
}

func TestCustomerSummaryUsesPrincipalID(t *testing.T) {
	api := fakeAPI(t, map[string]string{
		"/orders/customer/42": `{"success":true,"data":[{"id":9,"orderStatus":"SHIPPED","totalAmount":20},{"id":8,"orderStatus":"DELIVERED","totalAmount":30}]}`,
	})

	s, err := NewLoader(api).Load(context.Background(), Customer, models.Principal{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, "2", statValue(t, s, "My orders"))
	assert.Equal(t, "1", statValue(t, s, "Active orders"))
	assert.Equal(t, "$50.00", statValue(t, s, "Total spent"))
}

func TestProductSummary(t *testing.T) {
	api := fakeAPI(t, map[string]string{
		"/products/my": `{"success":true,"data":[{"id":1,"price":2,"totalStock":10,"availableStock":3,"category":"a"},{"id":2,"price":1,"totalStock":5,"availableStock":50,"category":"a"}]}`,
	})

	s, err := NewLoader(api).Load(context.Background(), ProductManager, models.Principal{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "1", statValue(t, s, "Categories"))
	assert.Equal(t, "1", statValue(t, s, "Low availability"))
	assert.Equal(t, "$25.00", statValue(t, s, "Stock value"))
}

func TestFailedCallFailsTheDashboard(t *testing.T) {
	api := fakeAPI(t, map[string]string{
		"/orders": `{"success":true,"data":[]}`,
		"/users":  `{"success":true,"data":[]}`,
	})

	_, err := NewLoader(api).Load(context.Background(), CustomerSupport, models.Principal{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apiclient.StatusOf(err))
}

func TestUnknownVariant(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), Variant(0), models.Principal{})
	assert.Error(t, err)
}
