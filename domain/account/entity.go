package account

import "time"

// User is an account managed entirely by the auth module. The rest of
// the system treats it as an opaque value attached to the request context.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	Name         string `gorm:"type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Session is a server-side session record. The token column stores the
// signed token handed to the client; expired rows are ignored on lookup.
type Session struct {
	ID        string `gorm:"primaryKey;type:text"`
	Token     string `gorm:"uniqueIndex;not null;type:text"`
	UserID    string `gorm:"index;not null;type:text"`
	ExpiresAt time.Time
	IPAddress string `gorm:"type:text"`
	UserAgent string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the Session entity.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
