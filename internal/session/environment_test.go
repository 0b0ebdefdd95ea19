package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miltrack/miltrack/internal/auth"
	"github.com/miltrack/miltrack/internal/config"
	"github.com/miltrack/miltrack/internal/models"
)

// fakeAuth is a scriptable auth.Service for environment tests.
type fakeAuth struct {
	user          *models.User
	authenticated bool

	signInErr  error
	signOutErr error
}

func (f *fakeAuth) CurrentUser() *models.User { return f.user }
func (f *fakeAuth) IsAuthenticated() bool     { return f.authenticated }

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	u := &models.User{ID: "u1", Email: email}
	f.user = u
	f.authenticated = true
	return u, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password string, displayName *string) (*models.User, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeAuth) SignInWithProvider(ctx context.Context) (*models.User, error) {
	return f.SignIn(ctx, "provider@example.com", "")
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.user = nil
	f.authenticated = false
	return nil
}

func (f *fakeAuth) ResetPassword(ctx context.Context, email string) error { return nil }

func (f *fakeAuth) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error { return nil }

func (f *fakeAuth) DeleteAccount(ctx context.Context) error { return f.SignOut(ctx) }

func newTestEnvironment(a auth.Service) *Environment {
	flags := config.NewFeatureFlags(false, true)
	return NewEnvironment(Services{Auth: a}, flags, nil)
}

func TestSignInSuccessPublishesTwoTransitions(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{})

	ch, cancel := env.Subscribe()
	defer cancel()

	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")

	first := <-ch
	assert.True(t, first.Loading)
	assert.Empty(t, first.ErrorMessage)
	assert.False(t, first.Authenticated)

	second := <-ch
	assert.False(t, second.Loading)
	assert.True(t, second.Authenticated)
	require.NotNil(t, second.User)
	assert.Equal(t, "user@example.com", second.User.Email)
	assert.Empty(t, second.ErrorMessage)
}

func TestSignInFailureLeavesSessionUntouched(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{signInErr: auth.ErrInvalidCredentials})

	env.SignIn(context.Background(), "not-an-email", "short")

	st := env.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.Equal(t, auth.ErrInvalidCredentials.Error(), st.ErrorMessage)
}

func TestSignInClearsPreviousError(t *testing.T) {
	fa := &fakeAuth{signInErr: auth.ErrInvalidCredentials}
	env := newTestEnvironment(fa)

	env.SignIn(context.Background(), "bad", "bad")
	require.NotEmpty(t, env.State().ErrorMessage)

	fa.signInErr = nil
	ch, cancel := env.Subscribe()
	defer cancel()

	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")

	first := <-ch
	assert.True(t, first.Loading)
	assert.Empty(t, first.ErrorMessage)
}

func TestSignOutClearsSession(t *testing.T) {
	fa := &fakeAuth{}
	env := newTestEnvironment(fa)

	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")
	require.True(t, env.State().Authenticated)

	env.SignOut(context.Background())

	st := env.State()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
}

func TestSignOutFailureKeepsSession(t *testing.T) {
	fa := &fakeAuth{signOutErr: errors.New("backend unavailable")}
	env := newTestEnvironment(fa)

	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")
	env.SignOut(context.Background())

	st := env.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "backend unavailable", st.ErrorMessage)
}

func TestRefreshSessionAdoptsCapabilityState(t *testing.T) {
	fa := &fakeAuth{}
	env := newTestEnvironment(fa)

	// Sign-up driven directly against the capability.
	_, err := fa.SignUp(context.Background(), "new@example.com", "longenoughpassword", nil)
	require.NoError(t, err)
	assert.False(t, env.State().Authenticated)

	env.RefreshSession()

	st := env.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "new@example.com", st.User.Email)
}

func TestContinueAsGuest(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{})

	user := env.ContinueAsGuest()

	st := env.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "guest@miltrack.app", st.User.Email)
	assert.Contains(t, user.ID, "guest-")
	require.NotNil(t, user.DisplayName)
	assert.Equal(t, "Guest User", *user.DisplayName)
}

func TestClearError(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{signInErr: auth.ErrInvalidCredentials})

	env.SignIn(context.Background(), "bad", "bad")
	require.NotEmpty(t, env.State().ErrorMessage)

	env.ClearError()
	assert.Empty(t, env.State().ErrorMessage)
}

func TestStateReturnsCopy(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{})
	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")

	st := env.State()
	st.User.Email = "tampered@example.com"

	assert.Equal(t, "user@example.com", env.State().User.Email)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	env := newTestEnvironment(&fakeAuth{})

	ch, cancel := env.Subscribe()
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	env.SignIn(context.Background(), "user@example.com", "longenoughpassword")
}

func TestResolveServicesMockMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.MockLatency = 0

	flags := config.NewFeatureFlags(false, true)
	require.True(t, flags.MockMode())

	svcs, err := ResolveServices(context.Background(), cfg, flags, nil)
	require.NoError(t, err)
	require.NotNil(t, svcs.Auth)
	require.NotNil(t, svcs.Docs)
	require.NotNil(t, svcs.Blobs)

	assert.False(t, svcs.Auth.IsAuthenticated())
}
