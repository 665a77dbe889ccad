package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/example/task-api/domain/account"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when sign-in credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// AuthService owns user accounts and sessions. Everything outside this
// package treats both as opaque values.
type AuthService struct {
	repo   *AccountRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *AccountRepository, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp creates a new user account and an initial session.
func (s *AuthService) SignUp(ctx context.Context, email, name, password, ipAddress, userAgent string) (*domain.User, *domain.Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.createSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SignIn authenticates a user and opens a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.User, *domain.Session, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SignOut revokes the session referenced by the token. Unknown or
// invalid tokens are treated as already signed out.
func (s *AuthService) SignOut(_ context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	if err := s.repo.DeleteSession(claims.SessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve looks up the user/session pair for a token. A missing, invalid
// or expired session yields (nil, nil, nil): absence is not an error, the
// caller attaches null values and continues.
func (s *AuthService) Resolve(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if token == "" {
		return nil, nil, nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, nil
	}

	session, err := s.repo.FindSessionByID(claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Token != token || session.Expired(time.Now()) {
		return nil, nil, nil
	}

	user, err := s.repo.FindUserByID(session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, session, nil
}

// createSession opens a session row and signs its token.
func (s *AuthService) createSession(_ context.Context, user *domain.User, ipAddress, userAgent string) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokens.SessionTTL()),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	token, err := s.tokens.Sign(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	session.Token = token

	if err := s.repo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}
