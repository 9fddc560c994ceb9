// Package access decides, per navigation, whether a view may be shown.
package access

import (
	"fmt"
	"strings"

	"logichain-web/internal/models"
	"logichain-web/internal/session"
)

type audience int

const (
	audienceRoles audience = iota
	audiencePublic
	audienceAnyRole
)

// Rule is the set of principals allowed to see a route.
type Rule struct {
	audience audience
	roles    map[models.Role]struct{}
}

func Public() Rule { return Rule{audience: audiencePublic} }

// AnyRole admits every authenticated principal, whatever its role.
func AnyRole() Rule { return Rule{audience: audienceAnyRole} }

func Roles(roles ...models.Role) Rule {
	set := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Rule{audience: audienceRoles, roles: set}
}

func (r Rule) IsPublic() bool { return r.audience == audiencePublic }

func (r Rule) IsAnyRole() bool { return r.audience == audienceAnyRole }

// Empty reports a role rule that nobody can satisfy.
func (r Rule) Empty() bool { return r.audience == audienceRoles && len(r.roles) == 0 }

func (r Rule) Allows(role models.Role) bool {
	switch r.audience {
	case audiencePublic, audienceAnyRole:
		return true
	default:
		_, ok := r.roles[role]
		return ok
	}
}

func (r Rule) String() string {
	switch r.audience {
	case audiencePublic:
		return "public"
	case audienceAnyRole:
		return "any-role"
	}
	names := make([]string, 0, len(r.roles))
	for _, known := range models.AllRoles {
		if _, ok := r.roles[known]; ok {
			names = append(names, string(known))
		}
	}
	return fmt.Sprintf("roles(%s)", strings.Join(names, ","))
}

type Decision int

const (
	Render Decision = iota
	RedirectToLogin
	RedirectToNotFound
	// Forbidden is only produced by a policy configured with DenyForbidden.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToNotFound:
		return "redirect_not_found"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// DenyMode chooses what a role mismatch turns into.
type DenyMode int

const (
	DenyNotFound DenyMode = iota
	DenyForbidden
)

func (m DenyMode) String() string {
	if m == DenyForbidden {
		return "forbidden"
	}
	return "notfound"
}

func ParseDenyMode(s string) (DenyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "notfound", "not-found", "not_found":
		return DenyNotFound, nil
	case "forbidden":
		return DenyForbidden, nil
	default:
		return DenyNotFound, fmt.Errorf("unknown deny mode %q", s)
	}
}

type Policy struct {
	Deny DenyMode
}

// Decide is evaluated on every navigation against the current session.
func (p Policy) Decide(s session.Session, r Rule) Decision {
	if r.IsPublic() {
		return Render
	}
	if !s.Authenticated() {
		return RedirectToLogin
	}
	if r.Allows(s.Principal.Role) {
		return Render
	}
	if p.Deny == DenyForbidden {
		return Forbidden
	}
	return RedirectToNotFound
}
