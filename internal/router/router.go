// Package router maps application-level routes to screens and tabs, and
// tracks the navigation stack.
package router

// Route is the closed set of navigation destinations.
type Route int

const (
	RouteDashboard Route = iota
	RouteFitness
	RouteHealth
	RouteTools
	RouteAccountability
	RouteMore
	RouteProfile
	RouteSettings
	RouteOnboarding
)

// Routes lists every destination.
func Routes() []Route {
	return []Route{
		RouteDashboard, RouteFitness, RouteHealth, RouteTools,
		RouteAccountability, RouteMore, RouteProfile, RouteSettings,
		RouteOnboarding,
	}
}

// Title is the screen title for the route.
func (r Route) Title() string {
	switch r {
	case RouteDashboard:
		return "Dashboard"
	case RouteFitness:
		return "Fitness"
	case RouteHealth:
		return "Health"
	case RouteTools:
		return "Tools"
	case RouteAccountability:
		return "Accountability"
	case RouteMore:
		return "More"
	case RouteProfile:
		return "Profile"
	case RouteSettings:
		return "Settings"
	case RouteOnboarding:
		return "Welcome"
	}
	return "Unknown"
}

// TabIndex returns the tab-bar position for the six tab destinations; ok is
// false for routes that are not tabs.
func (r Route) TabIndex() (int, bool) {
	switch r {
	case RouteDashboard:
		return 0, true
	case RouteFitness:
		return 1, true
	case RouteHealth:
		return 2, true
	case RouteTools:
		return 3, true
	case RouteAccountability:
		return 4, true
	case RouteMore:
		return 5, true
	}
	return 0, false
}

// Router tracks the current route and the navigation stack. The zero value
// is at the dashboard with an empty stack.
type Router struct {
	current Route
	stack   []Route
}

// New returns a router at the dashboard.
func New() *Router { return &Router{current: RouteDashboard} }

// Current returns the active route.
func (r *Router) Current() Route { return r.current }

// Depth returns the navigation stack depth.
func (r *Router) Depth() int { return len(r.stack) }

// Navigate pushes the route and makes it current.
func (r *Router) Navigate(route Route) {
	r.stack = append(r.stack, route)
	r.current = route
}

// NavigateBack pops the stack, restoring the previously current route.
// No-op when the stack is empty.
func (r *Router) NavigateBack() {
	if len(r.stack) == 0 {
		return
	}
	r.stack = r.stack[:len(r.stack)-1]
	if len(r.stack) == 0 {
		r.current = RouteDashboard
		return
	}
	r.current = r.stack[len(r.stack)-1]
}

// NavigateToRoot clears the stack and returns to the dashboard.
func (r *Router) NavigateToRoot() {
	r.stack = nil
	r.current = RouteDashboard
}
