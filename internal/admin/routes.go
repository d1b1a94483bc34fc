package admin

import (
	"net/url"
	"strings"
)

// Route is a console location.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
	RouteSalons    Route = "/dashboard/salons"
	RouteNewSalon  Route = "/dashboard/salons/new"
)

// SalonRoute is the detail location of one salon.
func SalonRoute(id string) Route {
	return RouteSalons + Route("/"+url.PathEscape(id))
}

// SalonID extracts the id from a detail route.
func (r Route) SalonID() (string, bool) {
	rest, ok := strings.CutPrefix(string(r), string(RouteSalons)+"/")
	if !ok || rest == "" || Route(rest) == "new" || strings.Contains(rest, "/") {
		return "", false
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return id, true
}

// Protected reports whether the route sits behind the gate.
func (r Route) Protected() bool {
	return r == RouteDashboard || strings.HasPrefix(string(r), string(RouteDashboard)+"/")
}

// Navigate asks whoever owns navigation to move to a route.
type Navigate struct {
	To Route
}
