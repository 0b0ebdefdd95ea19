package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/miltrack/miltrack/internal/logging"
	"github.com/miltrack/miltrack/internal/models"
)

// MockService is the in-memory stand-in for a real authentication backend,
// used for local development and tests. Every operation sleeps a small
// multiple of the configured latency unit before doing anything, then
// validates and applies its effect; a failed operation leaves the session
// untouched.
type MockService struct {
	mu      sync.Mutex
	current *models.User

	latencyUnit time.Duration
	logger      logging.Logger
	now         func() time.Time
}

var _ Service = (*MockService)(nil)

// NewMockService constructs a MockService. latencyUnit scales the simulated
// network delay (100ms gives realistic development delays; 0 disables
// sleeping, which is what tests want).
func NewMockService(latencyUnit time.Duration, logger logging.Logger) *MockService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MockService{latencyUnit: latencyUnit, logger: logger, now: time.Now}
}

// simulate blocks for units × latencyUnit or until ctx is done. The wait has
// no side effects.
func (s *MockService) simulate(ctx context.Context, units int) error {
	d := time.Duration(units) * s.latencyUnit
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MockService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *MockService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *MockService) setSession(u *models.User) {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
}

func (s *MockService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Debug(ctx, "mock sign in attempt", "email", email)

	if err := s.simulate(ctx, 10); err != nil {
		return nil, err
	}
	if !ValidEmail(email) || !ValidPassword(password) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	user := &models.User{
		ID:          fmt.Sprintf("mock-user-%s", uuid.NewString()),
		Email:       email,
		DisplayName: models.StringPtr("Mock User"),
		Branch:      models.BranchPtr(models.BranchArmy),
		Rank:        models.StringPtr("E-4"),
		Unit:        models.StringPtr("1st Battalion"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.setSession(user)
	return user, nil
}

func (s *MockService) SignUp(ctx context.Context, email, password string, displayName *string) (*models.User, error) {
	s.logger.Debug(ctx, "mock sign up attempt", "email", email)

	if err := s.simulate(ctx, 10); err != nil {
		return nil, err
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidCredentials
	}
	if !ValidPassword(password) {
		return nil, ErrWeakPassword
	}

	if displayName == nil {
		displayName = models.StringPtr("New User")
	}
	now := s.now()
	user := &models.User{
		ID:          fmt.Sprintf("mock-user-%s", uuid.NewString()),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.setSession(user)
	return user, nil
}

func (s *MockService) SignInWithProvider(ctx context.Context) (*models.User, error) {
	s.logger.Debug(ctx, "mock provider sign in attempt")

	if err := s.simulate(ctx, 15); err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:          fmt.Sprintf("provider-user-%s", uuid.NewString()),
		Email:       "user@privaterelay.example.com",
		DisplayName: models.StringPtr("Provider User"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.setSession(user)
	return user, nil
}

func (s *MockService) SignOut(ctx context.Context) error {
	s.logger.Debug(ctx, "mock sign out")

	if err := s.simulate(ctx, 5); err != nil {
		return err
	}
	s.setSession(nil)
	return nil
}

func (s *MockService) ResetPassword(ctx context.Context, email string) error {
	s.logger.Debug(ctx, "mock password reset", "email", email)

	if err := s.simulate(ctx, 10); err != nil {
		return err
	}
	if !ValidEmail(email) {
		return ErrUserNotFound
	}
	s.logger.Info(ctx, "password reset email sent", "email", email)
	return nil
}

func (s *MockService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	s.logger.Debug(ctx, "mock profile update")

	if err := s.simulate(ctx, 10); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrUserNotFound
	}
	updated := upd.Apply(*s.current, s.now())
	s.current = &updated
	return nil
}

func (s *MockService) DeleteAccount(ctx context.Context) error {
	s.logger.Debug(ctx, "mock account deletion")

	if err := s.simulate(ctx, 20); err != nil {
		return err
	}
	s.setSession(nil)
	return nil
}
