package cli

import (
	"context"
	"fmt"

	"github.com/miltrack/miltrack/internal/models"
	"github.com/miltrack/miltrack/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in through the session
// controller. On success the onboarding flow moves to profile setup.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	a.env.SignIn(ctx, email, string(password))

	st := a.env.State()
	if st.ErrorMessage != "" {
		fmt.Fprintf(a.out, "Login unsuccessful: %s\n", st.ErrorMessage)
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", st.User.Email)
	if a.inOnboarding() {
		a.flow.SkipToProfileSetup()
	}
	return nil
}

// Register prompts for an email, password, and optional display name, and
// creates an account directly against the auth capability.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter display name (optional)", a.out)
	if err != nil {
		return err
	}

	var displayName *string
	if name != "" {
		displayName = models.StringPtr(name)
	}

	user, err := a.env.Services.Auth.SignUp(ctx, email, string(password), displayName)
	if err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %s\n", err.Error())
		return nil
	}

	a.env.RefreshSession()

	fmt.Fprintf(a.out, "Account created for %s\n", user.Email)
	if a.inOnboarding() {
		a.flow.SkipToProfileSetup()
	}
	return nil
}

// Guest installs a local guest identity and finishes onboarding; guests
// have no backend profile to set up.
func (a *App) Guest(ctx context.Context) {
	user := a.env.ContinueAsGuest()
	fmt.Fprintf(a.out, "Continuing as %s\n", *user.DisplayName)

	if a.inOnboarding() {
		a.flow.Complete()
	}
	a.Status(ctx)
}

// Whoami prints the current session.
func (a *App) Whoami(ctx context.Context) {
	st := a.env.State()
	if st.User == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}

	u := st.User
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.ID)
	if u.DisplayName != nil {
		fmt.Fprintf(a.out, "  Name:   %s\n", *u.DisplayName)
	}
	if u.Branch != nil {
		fmt.Fprintf(a.out, "  Branch: %s (%s)\n", *u.Branch, u.Branch.Abbreviation())
	}
	if u.Rank != nil {
		fmt.Fprintf(a.out, "  Rank:   %s\n", *u.Rank)
	}
	if u.Unit != nil {
		fmt.Fprintf(a.out, "  Unit:   %s\n", *u.Unit)
	}
}

// Logout signs out and resets navigation.
func (a *App) Logout(ctx context.Context) {
	a.env.SignOut(ctx)

	st := a.env.State()
	if st.ErrorMessage != "" {
		fmt.Fprintf(a.out, "Logout unsuccessful: %s\n", st.ErrorMessage)
		return
	}

	a.nav.NavigateToRoot()
	fmt.Fprintln(a.out, "Logged out.")
}

// Profile collects the profile-setup draft and submits it through the auth
// capability, completing onboarding on success.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return nil
	}

	fmt.Fprintln(a.out, "Service branches:")
	for i, b := range models.Branches() {
		fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, b, b.Abbreviation())
	}

	branchName, err := getSimpleText(a.reader, "Enter branch", a.out)
	if err != nil {
		return err
	}
	branch, err := models.ParseBranch(branchName)
	if err != nil {
		fmt.Fprintln(a.out, "Unknown branch:", branchName)
		return nil
	}

	rank, err := getSimpleText(a.reader, "Enter rank (e.g. E-4)", a.out)
	if err != nil {
		return err
	}

	unit, err := getSimpleText(a.reader, "Enter unit", a.out)
	if err != nil {
		return err
	}

	a.flow.SetBranch(branch)
	a.flow.SetRank(rank)
	a.flow.SetUnit(unit)

	if !a.flow.CanProceedFromProfile() {
		fmt.Fprintln(a.out, "Profile is incomplete; branch, rank and unit are required.")
		return nil
	}

	draft := a.flow.Draft()
	err = a.env.Services.Auth.UpdateProfile(ctx, models.ProfileUpdate{
		Branch: draft.Branch,
		Rank:   draft.Rank,
		Unit:   models.StringPtr(draft.Unit),
	})
	if err != nil {
		fmt.Fprintf(a.out, "Failed to save profile: %s\n", err.Error())
		return nil
	}

	a.env.RefreshSession()
	a.flow.Complete()
	fmt.Fprintln(a.out, "Profile saved.")
	a.Status(ctx)
	return nil
}
