package handlers

import (
	"log/slog"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/dashboard"
	"logichain-web/internal/routes"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

// Settings are the non-secret knobs shown on the admin settings page and
// consulted by the handlers.
type Settings struct {
	APIBaseURL          string
	DenyMode            string
	ClearOnUnauthorized bool
	AuditEnabled        bool
}

type Deps struct {
	API      *apiclient.Client
	Sessions session.Provider
	Loader   *dashboard.Loader
	Audit    audit.Recorder
	Log      *slog.Logger
	Table    []routes.Route
	Settings Settings
}

// Handler serves every view of the route table.
type Handler struct {
	api      *apiclient.Client
	sessions session.Provider
	loader   *dashboard.Loader
	audit    audit.Recorder
	log      *slog.Logger
	table    []routes.Route
	settings Settings
}

func New(d Deps) *Handler {
	if d.Audit == nil {
		d.Audit = audit.Nop{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Loader == nil {
		d.Loader = dashboard.NewLoader(d.API)
	}
	if d.Table == nil {
		d.Table = routes.Table()
	}
	return &Handler{
		api:      d.API,
		sessions: d.Sessions,
		loader:   d.Loader,
		audit:    d.Audit,
		log:      d.Log,
		table:    d.Table,
		settings: d.Settings,
	}
}

// Views maps every view of the route table to its handler.
func (h *Handler) Views() map[routes.View]gin.HandlerFunc {
	return map[routes.View]gin.HandlerFunc{
		routes.ViewLanding:        h.Landing,
		routes.ViewLogin:          h.ShowLogin,
		routes.ViewLoginSubmit:    h.Login,
		routes.ViewRegister:       h.ShowRegister,
		routes.ViewRegisterSubmit: h.Register,
		routes.ViewForgot:         h.ShowForgot,
		routes.ViewForgotSubmit:   h.ForgotPassword,
		routes.ViewForgotVerify:   h.VerifyOTP,
		routes.ViewForgotReset:    h.ResetPassword,
		routes.ViewLogout:         h.Logout,
		routes.ViewNotFound:       h.NotFound,

		routes.ViewDashboard:      h.Dashboard,
		routes.ViewProfile:        h.ShowProfile,
		routes.ViewProfileSubmit:  h.UpdateProfile,
		routes.ViewPasswordSubmit: h.ChangePassword,

		routes.ViewNewOrder:       h.ShowNewOrder,
		routes.ViewNewOrderSubmit: h.CreateOrder,
		routes.ViewMyOrders:       h.MyOrders,
		routes.ViewOrderDetails:   h.OrderDetails,
		routes.ViewTrackShipment:  h.TrackShipment,
		routes.ViewMyReturns:      h.MyReturns,
		routes.ViewReturnSubmit:   h.CreateReturn,

		routes.ViewInventory:     h.Inventory,
		routes.ViewWarehouses:    h.Warehouses,
		routes.ViewOrders:        h.Orders,
		routes.ViewOrderStatus:   h.UpdateOrderStatus,
		routes.ViewShipments:     h.Shipments,
		routes.ViewWareProducts:  h.WareProducts,
		routes.ViewAllOrders:     h.AllOrders,
		routes.ViewReturns:       h.Returns,
		routes.ViewCustomers:     h.Customers,
		routes.ViewTracking:      h.Tracking,
		routes.ViewNotifications: h.Notifications,

		routes.ViewUsers:             h.Users,
		routes.ViewUserDelete:        h.DeleteUser,
		routes.ViewAdminProducts:     h.AdminProducts,
		routes.ViewAdminWarehouses:   h.Warehouses,
		routes.ViewAdminOrders:       h.AdminOrders,
		routes.ViewInventoryOverview: h.InventoryOverview,
		routes.ViewCarriers:          h.Carriers,
		routes.ViewSettings:          h.ShowSettings,
		routes.ViewAnalytics:         h.Analytics,
		routes.ViewLogs:              h.Logs,

		routes.ViewProducts: h.Products,
	}
}
