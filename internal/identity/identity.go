// Package identity is the sign-in collaborator for the booking flow.
//
// The rest of the system only ever asks two questions: "who is the
// current user, if any?" and "sign this session out" — booking and
// ticket handlers check user presence before proceeding and nothing
// more. Accounts are bcrypt-hashed rows in Postgres; live sessions are
// opaque tokens in Redis with a TTL.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/ani232003/IRCTC/internal/model"
)

// ─── Errors ─────────────────────────────────────────────────

var (
	// ErrInvalidCredentials is returned for a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrWeakPassword is returned when the password is shorter than 6
	// characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrPasswordMismatch is returned when the two password fields of
	// the registration form differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrNoSession is returned when a token maps to no live session.
	ErrNoSession = errors.New("not signed in")
)

// ─── Provider ───────────────────────────────────────────────

// Provider is the identity collaborator interface the handlers depend on.
type Provider interface {
	SignUp(ctx context.Context, fullName, email, password, confirm string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (token string, user *model.User, err error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	SignOut(ctx context.Context, token string) error
}

// UserStore persists accounts. UserByEmail returns (nil, nil) when no
// account exists for the email.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ─── Service ────────────────────────────────────────────────

const sessionKeyPrefix = "session:"

// Service implements Provider on Postgres accounts and Redis sessions.
type Service struct {
	users UserStore
	redis *redis.Client
	ttl   time.Duration

	// newToken is swappable for deterministic tests.
	newToken func() string
}

// NewService creates the identity service. Sessions live for ttl.
func NewService(users UserStore, rdb *redis.Client, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		redis:    rdb,
		ttl:      ttl,
		newToken: func() string { return uuid.NewString() },
	}
}

// SignUp registers a new account. The confirm argument mirrors the
// registration form's second password field.
func (s *Service) SignUp(ctx context.Context, fullName, email, password, confirm string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	existing, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("identity: lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("identity: create user: %w", err)
	}

	log.Printf("[identity] Registered %s", user.Email)
	return user, nil
}

// SignIn verifies credentials and opens a session, returning its token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("identity: lookup email: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := s.newToken()
	payload, err := json.Marshal(user)
	if err != nil {
		return "", nil, fmt.Errorf("identity: marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("identity: store session: %w", err)
	}

	log.Printf("[identity] Signed in %s", user.Email)
	return token, user, nil
}

// CurrentUser resolves a session token to its user, or ErrNoSession.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	payload, err := s.redis.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("identity: read session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("identity: decode session: %w", err)
	}
	return &user, nil
}

// SignOut tears the session down. Unknown tokens are a no-op: the caller
// is signed out either way.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("identity: delete session: %w", err)
	}
	return nil
}
