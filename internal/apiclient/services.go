package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"logichain-web/internal/models"
)

type AuthService struct{ c *Client }

func (s *AuthService) Login(ctx context.Context, cred models.Credentials) (Envelope[models.LoginResult], error) {
	return call[models.LoginResult](ctx, s.c, http.MethodPost, "/auth/login", "/auth/login", cred)
}

func (s *AuthService) Register(ctx context.Context, reg models.Registration) (Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, s.c, http.MethodPost, "/auth/register", "/auth/register", reg)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (Envelope[json.RawMessage], error) {
	body := map[string]string{"email": email}
	return call[json.RawMessage](ctx, s.c, http.MethodPost, "/auth/forgot-password", "/auth/forgot-password", body)
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (Envelope[models.OTPVerification], error) {
	body := map[string]string{"email": email, "otp": otp}
	return call[models.OTPVerification](ctx, s.c, http.MethodPost, "/auth/verify-otp", "/auth/verify-otp", body)
}

func (s *AuthService) ResetPassword(ctx context.Context, r models.PasswordReset) (Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, s.c, http.MethodPost, "/auth/reset-password", "/auth/reset-password", r)
}

type ProfileService struct{ c *Client }

func (s *ProfileService) Get(ctx context.Context) (Envelope[models.Profile], error) {
	return call[models.Profile](ctx, s.c, http.MethodGet, "/profile", "/profile", nil)
}

func (s *ProfileService) Update(ctx context.Context, u models.ProfileUpdate) (Envelope[models.Profile], error) {
	return call[models.Profile](ctx, s.c, http.MethodPut, "/profile", "/profile", u)
}

func (s *ProfileService) ChangePassword(ctx context.Context, p models.PasswordChange) (Envelope[json.RawMessage], error) {
	return call[json.RawMessage](ctx, s.c, http.MethodPut, "/profile/change-password", "/profile/change-password", p)
}

type UserService struct{ resource[models.User] }

type CarrierService struct{ resource[models.Carrier] }

type ReturnService struct{ resource[models.Return] }

type WarehouseService struct{ resource[models.Warehouse] }

type ProductService struct{ resource[models.Product] }

// Mine lists the products created by the caller.
func (s *ProductService) Mine(ctx context.Context) (Envelope[[]models.Product], error) {
	return call[[]models.Product](ctx, s.c, http.MethodGet, "/products/my", "/products/my", nil)
}

func (s *ProductService) ByManager(ctx context.Context, managerID int64) (Envelope[[]models.Product], error) {
	return call[[]models.Product](ctx, s.c, http.MethodGet, "/products/manager/:id", idPath("/products/manager", managerID), nil)
}

type OrderService struct{ resource[models.Order] }

func (s *OrderService) ByCustomer(ctx context.Context, customerID int64) (Envelope[[]models.Order], error) {
	return call[[]models.Order](ctx, s.c, http.MethodGet, "/orders/customer/:id", idPath("/orders/customer", customerID), nil)
}

// UpdateStatus sends a partial patch with the new status only.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (Envelope[models.Order], error) {
	path := fmt.Sprintf("/orders/%d/status", id)
	return call[models.Order](ctx, s.c, http.MethodPatch, "/orders/:id/status", path, models.StatusChange{Status: status})
}

type InventoryService struct{ resource[models.InventoryItem] }

func (s *InventoryService) LowStock(ctx context.Context) (Envelope[[]models.InventoryItem], error) {
	return call[[]models.InventoryItem](ctx, s.c, http.MethodGet, "/inventory/low-stock", "/inventory/low-stock", nil)
}

func (s *InventoryService) ByProduct(ctx context.Context, productID int64) (Envelope[[]models.InventoryItem], error) {
	return call[[]models.InventoryItem](ctx, s.c, http.MethodGet, "/inventory/product/:id", idPath("/inventory/product", productID), nil)
}

type ShipmentService struct{ resource[models.Shipment] }

func (s *ShipmentService) Track(ctx context.Context, trackingNumber string) (Envelope[models.Shipment], error) {
	return call[models.Shipment](ctx, s.c, http.MethodGet, "/shipments/track/:trackingNumber", segment("/shipments/track", trackingNumber), nil)
}

type LogService struct{ c *Client }

func (s *LogService) List(ctx context.Context) (Envelope[[]models.LogEntry], error) {
	return call[[]models.LogEntry](ctx, s.c, http.MethodGet, "/logs", "/logs", nil)
}
