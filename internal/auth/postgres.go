package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/miltrack/miltrack/internal/auth/migrations"
	"github.com/miltrack/miltrack/internal/dbx"
	"github.com/miltrack/miltrack/internal/logging"
	"github.com/miltrack/miltrack/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresService is the real authentication backend: bcrypt-hashed
// credentials in Postgres, HS256 access tokens minted on sign-in. All driver
// failures are mapped into the package's closed error set.
type PostgresService struct {
	mu          sync.Mutex
	current     *models.User
	accessToken string

	db            *sql.DB
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
	now           func() time.Time
}

var _ Service = (*PostgresService)(nil)

// NewPostgresService opens the identity store and runs its migrations.
func NewPostgresService(dsn string, jwtSecret string, tokenValidity time.Duration, logger logging.Logger) (*PostgresService, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.Up(db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &PostgresService{
		db:            db,
		jwtSecret:     []byte(jwtSecret),
		tokenValidity: tokenValidity,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresService) Close() error { return s.db.Close() }

// AccessToken returns the token minted for the active session, or "".
func (s *PostgresService) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *PostgresService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *PostgresService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *PostgresService) setSession(u *models.User, token string) {
	s.mu.Lock()
	s.current = u
	s.accessToken = token
	s.mu.Unlock()
}

// mapError converts a driver failure into the capability taxonomy.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailAlreadyInUse
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrNetwork
	}
	return fmt.Errorf("auth backend: %w", err)
}

const userColumns = `id, email, password_hash, display_name, branch, rank, unit, profile_image_url, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, string, error) {
	var (
		u      models.User
		hash   string
		branch *string
	)
	err := row.Scan(&u.ID, &u.Email, &hash, &u.DisplayName, &branch, &u.Rank, &u.Unit, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, "", err
	}
	if branch != nil {
		u.Branch = models.BranchPtr(models.Branch(*branch))
	}
	return &u, hash, nil
}

func (s *PostgresService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Debug(ctx, "sign in attempt", "email", email)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, hash, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, mapError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("auth backend: %w", err)
	}

	s.setSession(user, token)
	return user, nil
}

func (s *PostgresService) SignUp(ctx context.Context, email, password string, displayName *string) (*models.User, error) {
	s.logger.Debug(ctx, "sign up attempt", "email", email)

	if !ValidEmail(email) {
		return nil, ErrInvalidCredentials
	}
	if !ValidPassword(password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth backend: %w", err)
	}

	user := &models.User{Email: email, DisplayName: displayName}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, display_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		email, string(hash), displayName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}

	token, err := GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("auth backend: %w", err)
	}

	s.setSession(user, token)
	return user, nil
}

// SignInWithProvider is not available on the self-hosted backend; federated
// identity needs an external broker this deployment does not carry.
func (s *PostgresService) SignInWithProvider(ctx context.Context) (*models.User, error) {
	return nil, fmt.Errorf("auth backend: provider sign-in is not configured")
}

func (s *PostgresService) SignOut(ctx context.Context) error {
	s.logger.Debug(ctx, "sign out")
	s.setSession(nil, "")
	return nil
}

func (s *PostgresService) ResetPassword(ctx context.Context, email string) error {
	s.logger.Debug(ctx, "password reset", "email", email)

	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return mapError(err)
	}

	// Mail delivery is a collaborator concern; the core only verifies the
	// account exists.
	s.logger.Info(ctx, "password reset requested", "user_id", id)
	return nil
}

// UpdateProfile re-reads the stored row under a row lock, applies the
// update, and writes it back, so concurrent updates cannot clobber fields
// they did not touch.
func (s *PostgresService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return ErrUserNotFound
	}

	var updated models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, current.ID)

		stored, _, err := scanUser(row)
		if err != nil {
			return err
		}

		updated = upd.Apply(*stored, s.now())

		var branch *string
		if updated.Branch != nil {
			b := string(*updated.Branch)
			branch = &b
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users
			 SET display_name = $2, branch = $3, rank = $4, unit = $5, updated_at = $6
			 WHERE id = $1`,
			updated.ID, updated.DisplayName, branch, updated.Rank, updated.Unit, updated.UpdatedAt)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return mapError(err)
	}

	s.mu.Lock()
	s.current = &updated
	s.mu.Unlock()
	return nil
}

func (s *PostgresService) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return ErrUserNotFound
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, current.ID); err != nil {
		return mapError(err)
	}

	s.setSession(nil, "")
	return nil
}
