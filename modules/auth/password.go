package auth

import "golang.org/x/crypto/bcrypt"

// defaultHashCost is the bcrypt work factor used when none is
// configured. Raising it slows every sign-up and sign-in proportionally.
const defaultHashCost = 12

// PasswordHasher derives and checks salted bcrypt hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given work factor. Values
// outside bcrypt's supported range fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted hash from the plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
