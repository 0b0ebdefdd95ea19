package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/miltrack/miltrack/internal/router"
)

// routeNames maps command arguments to routes.
var routeNames = map[string]router.Route{
	"dashboard":      router.RouteDashboard,
	"fitness":        router.RouteFitness,
	"health":         router.RouteHealth,
	"tools":          router.RouteTools,
	"accountability": router.RouteAccountability,
	"more":           router.RouteMore,
	"profile":        router.RouteProfile,
	"settings":       router.RouteSettings,
	"onboarding":     router.RouteOnboarding,
}

// Goto navigates to the named screen.
func (a *App) Goto(ctx context.Context, name string) {
	if a.inOnboarding() {
		fmt.Fprintln(a.out, "Finish onboarding first.")
		return
	}

	route, ok := routeNames[strings.ToLower(name)]
	if !ok {
		fmt.Fprintln(a.out, "Unknown screen:", name)
		return
	}

	a.nav.Navigate(route)
	if idx, isTab := route.TabIndex(); isTab {
		fmt.Fprintf(a.out, "%s (tab %d)\n", route.Title(), idx)
	} else {
		fmt.Fprintln(a.out, route.Title())
	}
}

// Root clears the navigation stack and returns to the dashboard.
func (a *App) Root(ctx context.Context) {
	if a.inOnboarding() {
		fmt.Fprintln(a.out, "Finish onboarding first.")
		return
	}
	a.nav.NavigateToRoot()
	a.Status(ctx)
}
