package handlers

import (
	"net/mail"
	"strings"
)

const (
	minPasswordLen = 6
	minUsernameLen = 3
)

// formErrors collects the first problem per field, in the order checked.
type formErrors []string

func (f *formErrors) require(value, field string) {
	if strings.TrimSpace(value) == "" {
		*f = append(*f, field+" is required")
	}
}

func (f *formErrors) email(value string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@"):], ".") {
		*f = append(*f, "Please enter a valid email address")
	}
}

func (f *formErrors) password(value string) {
	if value != "" && len(value) < minPasswordLen {
		*f = append(*f, "Password must be at least 6 characters")
	}
}

func (f *formErrors) confirm(value, confirmation string) {
	if value != confirmation {
		*f = append(*f, "Passwords do not match")
	}
}

func (f *formErrors) username(value string) {
	if value != "" && len(strings.TrimSpace(value)) < minUsernameLen {
		*f = append(*f, "Username must be at least 3 characters")
	}
}

func (f formErrors) first() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}
