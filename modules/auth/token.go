package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpiredToken is returned when a session token has expired.
	ErrExpiredToken = errors.New("session token has expired")
)

// TokenConfig holds session token configuration.
type TokenConfig struct {
	SecretKey  string
	SessionTTL time.Duration
	Issuer     string
}

// DefaultTokenConfig returns a default token configuration. The secret
// key must be overridden via AUTH_SECRET outside local development.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey:  "insecure-dev-secret-change-me",
		SessionTTL: 7 * 24 * time.Hour,
		Issuer:     "task-api",
	}
}

// SessionClaims are the claims embedded in a signed session token. The
// token only references a server-side session row; possession of a valid
// signature is not enough, the row must still exist and be unexpired.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new TokenManager with the given configuration.
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{
		config: config,
	}
}

// Sign generates a signed token for the given session.
func (m *TokenManager) Sign(sessionID, userID string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Verify validates a session token and returns its claims.
func (m *TokenManager) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionTTL returns the configured session lifetime.
func (m *TokenManager) SessionTTL() time.Duration {
	return m.config.SessionTTL
}
