package handlers

import (
	"net/http"
	"strings"

	"logichain-web/internal/middleware"
	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowProfile(c *gin.Context) {
	h.renderProfile(c, http.StatusOK, "")
}

func (h *Handler) renderProfile(c *gin.Context, status int, formErr string) {
	s := middleware.CurrentSession(c)
	profile := models.Profile{
		ID:       s.Principal.ID,
		Username: s.Principal.Username,
		Email:    s.Principal.Email,
		Role:     s.Principal.Role,
	}

	env, err := h.api.Profile.Get(c.Request.Context())
	if err != nil {
		if h.apiFailed(c, err, "Failed to load profile") {
			return
		}
	} else {
		profile = env.Data
	}

	h.render(c, status, "profile.html", gin.H{
		"Title":   "Profile",
		"profile": profile,
		"error":   formErr,
	})
}

type profileForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderProfile(c, http.StatusBadRequest, "Invalid form data")
		return
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	var errs formErrors
	errs.require(form.Username, "Username")
	errs.require(form.Email, "Email")
	errs.username(form.Username)
	errs.email(form.Email)
	if len(errs) > 0 {
		h.renderProfile(c, http.StatusBadRequest, errs.first())
		return
	}

	update := models.ProfileUpdate{Username: form.Username, Email: form.Email, Phone: strings.TrimSpace(form.Phone)}
	env, err := h.api.Profile.Update(c.Request.Context(), update)
	if err != nil {
		if h.apiFailed(c, err, "Failed to update profile") {
			return
		}
		h.redirect(c, "/profile")
		return
	}

	// keep the header in sync with the new name and email
	s := middleware.CurrentSession(c)
	p := s.Principal
	p.Username, p.Email = env.Data.Username, env.Data.Email
	if p.Username == "" {
		p.Username = update.Username
	}
	if p.Email == "" {
		p.Email = update.Email
	}
	if err := h.sessions(c).Save(p, s.Token); err != nil {
		h.log.Error("save session failed", "error", err)
	}

	h.flash(c, session.NoticeSuccess, "Profile updated")
	h.redirect(c, "/profile")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	current := c.PostForm("current_password")
	next := c.PostForm("new_password")

	var errs formErrors
	errs.require(current, "Current password")
	errs.require(next, "New password")
	errs.password(next)
	errs.confirm(next, c.PostForm("confirm_password"))
	if len(errs) > 0 {
		h.renderProfile(c, http.StatusBadRequest, errs.first())
		return
	}

	_, err := h.api.Profile.ChangePassword(c.Request.Context(), models.PasswordChange{CurrentPassword: current, NewPassword: next})
	if err != nil {
		if h.apiFailed(c, err, "Failed to change password") {
			return
		}
		h.redirect(c, "/profile")
		return
	}

	h.flash(c, session.NoticeSuccess, "Password changed")
	h.redirect(c, "/profile")
}
