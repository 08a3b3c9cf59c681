package routes

import (
	"strings"

	"villa-client/models"
)

// Route is one entry in the client's navigation surface. Protected routes
// with an empty role set admit any authenticated user; a non-empty set
// restricts to those roles.
type Route struct {
	Path      string
	Protected bool
	Roles     []models.Role
}

// Well-known paths the guard redirects to.
const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
	NotFoundPath  = "/not-found"
)

// Table returns the full route surface of the client.
func Table() []Route {
	return []Route{
		{Path: "/"},
		{Path: LoginPath},
		{Path: "/register"},
		{Path: "/forgot-password"},
		{Path: "/reset-password"},
		{Path: "/password-updated"},
		{Path: "/our-villa"},
		{Path: "/faq"},
		{Path: "/contact"},
		{Path: "/about"},
		{Path: ForbiddenPath},
		{Path: NotFoundPath},

		{Path: "/homepage", Protected: true},
		{Path: "/profile", Protected: true},
		{Path: "/villa-detail/:id", Protected: true},
		{Path: "/booking/:villaId", Protected: true},
		{Path: "/payment/:bookingId", Protected: true},
		{Path: "/confirmation/:bookingId", Protected: true},
		{Path: "/invoice/:bookingId", Protected: true},

		{Path: "/owner", Protected: true, Roles: []models.Role{models.RoleOwner, models.RoleAdmin}},
		{Path: "/add-villa", Protected: true, Roles: []models.Role{models.RoleOwner, models.RoleAdmin}},

		{Path: "/admin", Protected: true, Roles: []models.Role{models.RoleAdmin}},
	}
}

// Match resolves a concrete path against the table, extracting :params.
// Unknown paths fall through to the not-found route.
func Match(path string) (Route, map[string]string) {
	path = strings.TrimRight(path, "/")
	if path == "" {
		path = "/"
	}

	for _, route := range Table() {
		if params, ok := matchPattern(route.Path, path); ok {
			return route, params
		}
	}
	return Route{Path: NotFoundPath}, nil
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	if pattern == path {
		return nil, true
	}
	if !strings.Contains(pattern, ":") {
		return nil, false
	}

	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}
