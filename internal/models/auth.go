package models

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data part of a successful POST /auth/login.
type LoginResult struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (r LoginResult) Principal() Principal {
	return Principal{ID: r.ID, Username: r.Username, Email: r.Email, Role: r.Role}
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

type OTPVerification struct {
	ResetToken string `json:"resetToken"`
}

type PasswordReset struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}
