package guard

import (
	"strings"

	"fitcoach-web/internal/roles"
)

// Action is the outcome class of a route decision.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectForbidden
	RedirectHome
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectForbidden:
		return "redirect_forbidden"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating one request against the route rules.
// Target is the redirect destination; empty for Allow.
type Decision struct {
	Action Action
	Target string
	// Role is the resolved role claim, when a credential was decoded.
	Role roles.Role
}

const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
)

// Rule maps a path prefix to the roles allowed past it.
// A nil Allowed set means "any authenticated user".
type Rule struct {
	Prefix  string
	Allowed []roles.Role
}

// protectedRules is the authenticated-area rule table. At most one rule
// matches a path; prefixes must not nest.
var protectedRules = []Rule{
	{Prefix: "/admin", Allowed: []roles.Role{roles.Admin, roles.Owner}},
	{Prefix: "/personal", Allowed: []roles.Role{roles.Personal}},
	{Prefix: "/student", Allowed: []roles.Role{roles.Student}},
	{Prefix: "/profile", Allowed: nil},
}

// authPaths are the unauthenticated entry points. A signed-in user landing
// here is bounced to their dashboard.
var authPaths = []string{"/login", "/register"}

func matchRule(path string) (Rule, bool) {
	for _, r := range protectedRules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide evaluates a request path against the credential found on it.
//
// It is a pure function: no state, no side effects, safe to call on every
// request. Every code path terminates in a Decision; a credential that cannot
// be decoded is treated as untrusted and routed to login, never as an error.
func Decide(path, credential string) Decision {
	rule, protected := matchRule(path)
	authEntry := isAuthPath(path)

	if protected && credential == "" {
		return Decision{Action: RedirectLogin, Target: LoginPath}
	}

	if credential == "" || (!protected && !authEntry) {
		return Decision{Action: Allow}
	}

	role, err := DecodeRole(credential)
	if err != nil {
		return Decision{Action: RedirectLogin, Target: LoginPath}
	}

	if protected {
		if !roleAllowed(rule, role) {
			return Decision{Action: RedirectForbidden, Target: ForbiddenPath, Role: role}
		}
		return Decision{Action: Allow, Role: role}
	}

	// Auth entry point with a resolved role: send the user home. An Unknown
	// role has no home and may stay on the auth page.
	if home := role.Home(); home != "" {
		return Decision{Action: RedirectHome, Target: home, Role: role}
	}
	return Decision{Action: Allow, Role: role}
}

func roleAllowed(r Rule, role roles.Role) bool {
	if r.Allowed == nil {
		return true
	}
	for _, a := range r.Allowed {
		if role == a {
			return true
		}
	}
	return false
}
