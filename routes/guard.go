package routes

import (
	"villa-client/models"
)

// Decision is the outcome of a guard check for one navigation.
type Decision int

const (
	// Allow renders the target route.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// RedirectForbidden sends an authenticated visitor whose role is not
	// admitted to the forbidden page.
	RedirectForbidden
)

// Target returns the path a non-Allow decision redirects to.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectForbidden:
		return ForbiddenPath
	default:
		return ""
	}
}

// Check applies the role gate for a route against the current session.
// Purely synchronous, re-evaluated on every navigation, no network.
func Check(route Route, sess *models.Session) Decision {
	if !route.Protected {
		return Allow
	}
	if !sess.Valid() {
		return RedirectLogin
	}
	if len(route.Roles) == 0 {
		return Allow
	}
	for _, role := range route.Roles {
		if sess.User.Role == role {
			return Allow
		}
	}
	return RedirectForbidden
}
