// Package session owns the authenticated-session state: the single source
// of truth the UI observes, mediating every mutating call into the service
// layer.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miltrack/miltrack/internal/config"
	"github.com/miltrack/miltrack/internal/logging"
	"github.com/miltrack/miltrack/internal/models"
)

// subscriberBuffer sizes each subscriber channel; slow consumers drop
// intermediate snapshots rather than block a transition.
const subscriberBuffer = 16

// State is one observable snapshot of the session. Snapshots are discrete
// and atomic: a mutating operation publishes exactly two of them, the
// loading transition and the applied result, with nothing in between.
type State struct {
	Authenticated bool
	User          *models.User
	Loading       bool
	ErrorMessage  string
}

// Environment holds the session state and the resolved service handles.
//
// SignIn and SignOut are the only mutating entry points here; registration,
// guest continuation, and profile editing go through the auth capability
// directly, followed by RefreshSession. Concurrent mutating calls are not
// serialized; callers gate on Loading before triggering another.
type Environment struct {
	Services Services
	Flags    config.FeatureFlags

	mu      sync.Mutex
	state   State
	subs    map[int]chan State
	nextSub int

	logger logging.Logger
}

// NewEnvironment wires an Environment around already-resolved services.
func NewEnvironment(services Services, flags config.FeatureFlags, logger logging.Logger) *Environment {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Environment{
		Services: services,
		Flags:    flags,
		subs:     make(map[int]chan State),
		logger:   logger,
	}
}

// State returns the current snapshot.
func (e *Environment) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Environment) snapshotLocked() State {
	s := e.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Subscribe registers an observer of state transitions. The returned
// function unsubscribes and closes the channel; it is safe to call more
// than once.
func (e *Environment) Subscribe() (<-chan State, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan State, subscriberBuffer)
	e.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (e *Environment) publishLocked() {
	snap := e.snapshotLocked()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SignIn authenticates and adopts the resulting user. Observers see the
// loading transition, then the final state; a failure sets ErrorMessage and
// leaves the session untouched.
func (e *Environment) SignIn(ctx context.Context, email, password string) {
	e.logger.Debug(ctx, "sign in", "email", email)

	e.mu.Lock()
	e.state.Loading = true
	e.state.ErrorMessage = ""
	e.publishLocked()
	e.mu.Unlock()

	user, err := e.Services.Auth.SignIn(ctx, email, password)

	e.mu.Lock()
	if err != nil {
		e.state.ErrorMessage = err.Error()
	} else {
		e.state.User = user
		e.state.Authenticated = true
	}
	e.state.Loading = false
	e.publishLocked()
	e.mu.Unlock()
}

// SignOut ends the session. A failure sets ErrorMessage and leaves the
// session authenticated.
func (e *Environment) SignOut(ctx context.Context) {
	e.logger.Debug(ctx, "sign out")

	e.mu.Lock()
	e.state.Loading = true
	e.state.ErrorMessage = ""
	e.publishLocked()
	e.mu.Unlock()

	err := e.Services.Auth.SignOut(ctx)

	e.mu.Lock()
	if err != nil {
		e.state.ErrorMessage = err.Error()
	} else {
		e.state.User = nil
		e.state.Authenticated = false
	}
	e.state.Loading = false
	e.publishLocked()
	e.mu.Unlock()
}

// RefreshSession adopts the auth capability's current session in one
// transition. Used after flows driven directly against the capability
// (sign-up, provider sign-in, profile update).
func (e *Environment) RefreshSession() {
	user := e.Services.Auth.CurrentUser()
	authenticated := e.Services.Auth.IsAuthenticated()

	e.mu.Lock()
	e.state.User = user
	e.state.Authenticated = authenticated
	e.publishLocked()
	e.mu.Unlock()
}

// ContinueAsGuest installs a local guest identity in one transition. The
// auth capability is not involved; the guest exists only in this process.
func (e *Environment) ContinueAsGuest() *models.User {
	now := time.Now()
	user := &models.User{
		ID:          "guest-" + uuid.NewString(),
		Email:       "guest@miltrack.app",
		DisplayName: models.StringPtr("Guest User"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e.mu.Lock()
	e.state.User = user
	e.state.Authenticated = true
	e.publishLocked()
	e.mu.Unlock()

	return user
}

// ClearError discards the last error message.
func (e *Environment) ClearError() {
	e.mu.Lock()
	e.state.ErrorMessage = ""
	e.publishLocked()
	e.mu.Unlock()
}
