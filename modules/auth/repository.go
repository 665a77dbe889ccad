package auth

import (
	"errors"
	"time"

	domain "github.com/example/task-api/domain/account"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmailTaken is returned when a user with the email already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
)

// AccountRepository handles user and session persistence using GORM.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// CreateUser creates a new user.
func (r *AccountRepository) CreateUser(user *domain.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return result.Error
	}
	return nil
}

// FindUserByID finds a user by ID.
func (r *AccountRepository) FindUserByID(id string) (*domain.User, error) {
	var user domain.User
	result := r.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindUserByEmail finds a user by email.
func (r *AccountRepository) FindUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	result := r.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists.
func (r *AccountRepository) EmailExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CreateSession creates a new session row.
func (r *AccountRepository) CreateSession(session *domain.Session) error {
	return r.db.Create(session).Error
}

// FindSessionByID finds a session by ID.
func (r *AccountRepository) FindSessionByID(id string) (*domain.Session, error) {
	var session domain.Session
	result := r.db.First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

// DeleteSession removes a session by ID.
func (r *AccountRepository) DeleteSession(id string) error {
	result := r.db.Delete(&domain.Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpiredSessions prunes sessions past their expiry.
func (r *AccountRepository) DeleteExpiredSessions() error {
	return r.db.Where("expires_at <= ?", time.Now()).Delete(&domain.Session{}).Error
}
