package models

import "strings"

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleWarehouseManager Role = "WAREHOUSE_MANAGER"
	RoleCustomerSupport  Role = "CUSTOMER_SUPPORT"
	RoleCustomer         Role = "CUSTOMER"
	RoleProductManager   Role = "PRODUCT_MANAGER"
)

// AllRoles lists every role the API knows about.
var AllRoles = []Role{
	RoleAdmin,
	RoleWarehouseManager,
	RoleCustomerSupport,
	RoleCustomer,
	RoleProductManager,
}

func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Label turns WAREHOUSE_MANAGER into "Warehouse Manager".
func (r Role) Label() string {
	parts := strings.Split(strings.ToLower(string(r)), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// RegistrableRoles are the roles a visitor may pick on the sign-up form.
// Admin accounts are created by other admins only.
func RegistrableRoles() []Role {
	return []Role{RoleCustomer, RoleWarehouseManager, RoleCustomerSupport, RoleProductManager}
}

// Principal is the identity kept in the session next to the bearer token.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type User struct {
	ID              int64  `json:"id,omitempty"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password,omitempty"`
	ApprovalStatus  string `json:"approvalStatus,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	Active          bool   `json:"active"`
	NeedsApproval   bool   `json:"needsApproval"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
