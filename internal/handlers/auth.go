package handlers

import (
	"net/http"
	"strings"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/middleware"
	"logichain-web/internal/models"
	"logichain-web/internal/routes"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

//
// LOGIN / LOGOUT
//

func (h *Handler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data"})
		return
	}
	form.Email = strings.TrimSpace(form.Email)

	var errs formErrors
	errs.require(form.Email, "Email")
	errs.require(form.Password, "Password")
	errs.email(form.Email)
	if len(errs) > 0 {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": errs.first(), "email": form.Email})
		return
	}

	// A failed attempt must not leave the previous identity behind.
	store := h.sessions(c)
	if err := store.Clear(); err != nil {
		h.log.Error("clear session failed", "error", err)
	}
	middleware.ResetSession(c)

	env, err := h.api.Auth.Login(c.Request.Context(), models.Credentials{Email: form.Email, Password: form.Password})
	if err == nil && env.Data.Token == "" {
		err = session.ErrEmptyToken
	}
	if err == nil {
		err = store.Save(env.Data.Principal(), env.Data.Token)
	}
	if err != nil {
		if c.Request.Context().Err() != nil {
			c.Abort()
			return
		}
		h.record(c, session.Session{Principal: models.Principal{Email: form.Email}}, audit.ActionLogin, audit.OutcomeFailure, err.Error())
		msg := apiclient.MessageOf(err, "Login failed. Please try again.")
		h.flash(c, session.NoticeError, msg)
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{"email": form.Email})
		return
	}

	h.record(c, session.Session{Token: env.Data.Token, Principal: env.Data.Principal()}, audit.ActionLogin, audit.OutcomeSuccess, "")
	h.flash(c, session.NoticeSuccess, "Welcome back, "+env.Data.Username+"!")
	h.redirect(c, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if err := h.sessions(c).Clear(); err != nil {
		h.log.Error("clear session failed", "error", err)
	}
	middleware.ResetSession(c)
	if s.Authenticated() {
		h.record(c, s, audit.ActionLogout, audit.OutcomeSuccess, "")
	}
	h.redirect(c, routes.LoginPath)
}

//
// REGISTRATION
//

func (h *Handler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{
		"error": "",
		"roles": models.RegistrableRoles(),
		"role":  string(models.RoleCustomer),
	})
}

type registerForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	Role            string `form:"role"`
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegisterError(c, form, "Invalid form data")
		return
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	var errs formErrors
	errs.require(form.Username, "Username")
	errs.require(form.Email, "Email")
	errs.require(form.Password, "Password")
	errs.username(form.Username)
	errs.email(form.Email)
	errs.password(form.Password)
	errs.confirm(form.Password, form.ConfirmPassword)
	if len(errs) > 0 {
		h.renderRegisterError(c, form, errs.first())
		return
	}

	// only non-admin roles can be picked on the sign-up form
	role := models.Role(form.Role)
	if !registrable(role) {
		h.renderRegisterError(c, form, "Invalid role")
		return
	}

	reg := models.Registration{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     role,
		Phone:    strings.TrimSpace(form.Phone),
	}
	env, err := h.api.Auth.Register(c.Request.Context(), reg)
	if err != nil {
		if h.apiFailed(c, err, "Registration failed. Please try again.") {
			return
		}
		h.renderRegisterError(c, form, "")
		return
	}

	h.record(c, session.Session{Principal: models.Principal{Username: reg.Username, Email: reg.Email, Role: role}}, audit.ActionRegister, audit.OutcomeSuccess, "")
	msg := env.Message
	if msg == "" {
		msg = "Registration successful. Please log in."
	}
	h.flash(c, session.NoticeSuccess, msg)
	h.redirect(c, routes.LoginPath)
}

func (h *Handler) renderRegisterError(c *gin.Context, form registerForm, msg string) {
	h.render(c, http.StatusBadRequest, "register.html", gin.H{
		"error":    msg,
		"roles":    models.RegistrableRoles(),
		"username": form.Username,
		"email":    form.Email,
		"phone":    form.Phone,
		"role":     form.Role,
	})
}

func registrable(role models.Role) bool {
	for _, r := range models.RegistrableRoles() {
		if r == role {
			return true
		}
	}
	return false
}

//
// PASSWORD RESET (request code -> verify code -> new password)
//

const (
	forgotStepEmail  = "email"
	forgotStepOTP    = "otp"
	forgotStepReset  = "reset"
	forgotSuccessMsg = "Password reset successfully. Please log in."
)

func (h *Handler) ShowForgot(c *gin.Context) {
	h.renderForgot(c, http.StatusOK, gin.H{"step": forgotStepEmail})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	var errs formErrors
	errs.require(email, "Email")
	errs.email(email)
	if len(errs) > 0 {
		h.renderForgot(c, http.StatusBadRequest, gin.H{"step": forgotStepEmail, "error": errs.first(), "email": email})
		return
	}

	if _, err := h.api.Auth.ForgotPassword(c.Request.Context(), email); err != nil {
		if h.apiFailed(c, err, "Could not send the reset code. Please try again.") {
			return
		}
		h.renderForgot(c, http.StatusBadGateway, gin.H{"step": forgotStepEmail, "email": email})
		return
	}

	h.flash(c, session.NoticeSuccess, "A verification code was sent to "+email+".")
	h.renderForgot(c, http.StatusOK, gin.H{"step": forgotStepOTP, "email": email})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	otp := strings.TrimSpace(c.PostForm("otp"))

	var errs formErrors
	errs.require(email, "Email")
	errs.require(otp, "Verification code")
	if len(errs) > 0 {
		h.renderForgot(c, http.StatusBadRequest, gin.H{"step": forgotStepOTP, "error": errs.first(), "email": email})
		return
	}

	env, err := h.api.Auth.VerifyOTP(c.Request.Context(), email, otp)
	if err != nil {
		if h.apiFailed(c, err, "Invalid or expired code.") {
			return
		}
		h.renderForgot(c, http.StatusBadRequest, gin.H{"step": forgotStepOTP, "email": email})
		return
	}

	h.renderForgot(c, http.StatusOK, gin.H{
		"step":       forgotStepReset,
		"email":      email,
		"resetToken": env.Data.ResetToken,
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	reset := models.PasswordReset{
		Email:       strings.TrimSpace(c.PostForm("email")),
		ResetToken:  c.PostForm("reset_token"),
		NewPassword: c.PostForm("password"),
	}
	back := gin.H{"step": forgotStepReset, "email": reset.Email, "resetToken": reset.ResetToken}

	var errs formErrors
	errs.require(reset.ResetToken, "Reset token")
	errs.require(reset.NewPassword, "Password")
	errs.password(reset.NewPassword)
	errs.confirm(reset.NewPassword, c.PostForm("confirm_password"))
	if len(errs) > 0 {
		back["error"] = errs.first()
		h.renderForgot(c, http.StatusBadRequest, back)
		return
	}

	if _, err := h.api.Auth.ResetPassword(c.Request.Context(), reset); err != nil {
		if h.apiFailed(c, err, "Password reset failed. Please try again.") {
			return
		}
		h.renderForgot(c, http.StatusBadRequest, back)
		return
	}

	h.flash(c, session.NoticeSuccess, forgotSuccessMsg)
	h.redirect(c, routes.LoginPath)
}

func (h *Handler) renderForgot(c *gin.Context, status int, data gin.H) {
	h.render(c, status, "forgot_password.html", data)
}
