package cli

import (
	"context"
	"fmt"

	"github.com/miltrack/miltrack/internal/onboarding"
)

// Next moves the onboarding flow forward: through the intro slides first,
// then phase by phase, enforcing each phase's progression guard.
func (a *App) Next(ctx context.Context) {
	if !a.inOnboarding() {
		fmt.Fprintln(a.out, "Onboarding is complete; use 'goto <screen>' to navigate.")
		return
	}

	switch a.flow.State() {
	case onboarding.StateIntro:
		a.flow.NextSlide()

	case onboarding.StatePermissions:
		if !a.flow.CanProceedFromPermissions() {
			fmt.Fprintln(a.out, "Grant the required permissions first ('grant <id>').")
			return
		}
		a.flow.Advance()

	case onboarding.StateAuth:
		if !a.isLoggedIn() {
			fmt.Fprintln(a.out, "Log in, register, or continue as guest first.")
			return
		}
		a.flow.Advance()

	case onboarding.StateProfileSetup:
		if !a.flow.CanProceedFromProfile() {
			fmt.Fprintln(a.out, "Finish your profile first ('profile').")
			return
		}
		a.flow.Advance()
	}

	a.Status(ctx)
}

// Back moves one step backwards: a slide during the intro, a phase
// afterwards, and a screen once onboarding is over.
func (a *App) Back(ctx context.Context) {
	if !a.inOnboarding() {
		a.nav.NavigateBack()
		a.Status(ctx)
		return
	}

	if a.flow.State() == onboarding.StateIntro {
		a.flow.PreviousSlide()
	} else {
		a.flow.Retreat()
	}
	a.Status(ctx)
}

// Skip jumps straight to the auth gate.
func (a *App) Skip(ctx context.Context) {
	if !a.inOnboarding() {
		fmt.Fprintln(a.out, "Onboarding is complete.")
		return
	}
	a.flow.SkipToAuth()
	a.Status(ctx)
}

// Grant toggles a permission prompt by id.
func (a *App) Grant(ctx context.Context, id string) {
	if !a.inOnboarding() {
		fmt.Fprintln(a.out, "Onboarding is complete.")
		return
	}
	a.flow.TogglePermission(id)
	a.printPermissions()
}
