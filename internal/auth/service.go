// Package auth defines the authentication capability: the operations a
// backend must fulfill to establish and maintain a user session, the closed
// error taxonomy those operations fail with, and the mock and Postgres
// implementations.
package auth

import (
	"context"
	"errors"
	"regexp"

	"github.com/miltrack/miltrack/internal/models"
)

// Closed error set for the capability. Implementations map every
// backend-specific failure into one of these (or wrap an unknown message);
// no driver error type leaks past this package.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("an account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
	ErrUserNotFound       = errors.New("no account found with this email")
	ErrNetwork            = errors.New("network error, check your connection")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Service is the authentication capability.
//
// Contract:
//   - SignIn/SignUp/SignInWithProvider produce a User and record it as the
//     capability's current session before returning; there is no observable
//     window where the user is set but the authenticated flag is not.
//   - SignIn/SignUp reject malformed emails and short passwords with
//     ErrInvalidCredentials/ErrWeakPassword without touching session state.
//   - UpdateProfile fails with ErrUserNotFound when no session is active.
//   - SignOut/DeleteAccount clear the current session.
//
// All methods must honor context cancellation.
type Service interface {
	CurrentUser() *models.User
	IsAuthenticated() bool

	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, email, password string, displayName *string) (*models.User, error)
	SignInWithProvider(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
	DeleteAccount(ctx context.Context) error
}

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s passes the standard email-shape check.
func ValidEmail(s string) bool { return emailRx.MatchString(s) }

// ValidPassword reports whether s meets the minimum length requirement.
func ValidPassword(s string) bool { return len(s) >= MinPasswordLength }
