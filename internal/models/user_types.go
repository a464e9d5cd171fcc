package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role values. Every new account starts as RoleUser; promotion to admin is
// a manual DB operation, never an API input.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the full persisted user record, including the secret fields.
// The JSON tags exist for completeness, but handlers never serialize a User
// directly: everything that leaves the API goes through SanitizeUser below.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Slug         string `json:"slug" db:"slug"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`

	ProfileImage *string `json:"profileImage,omitempty" db:"profile_image"`

	PasswordChangedAt *time.Time `json:"-" db:"password_changed_at"`

	// Password reset flow. The code itself is stored hashed; only the
	// plaintext six digits ever travel by email.
	PasswordResetCode     *string    `json:"-" db:"password_reset_code"`
	PasswordResetExpires  *time.Time `json:"-" db:"password_reset_expires"`
	PasswordResetVerified *bool      `json:"-" db:"password_reset_verified"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SanitizeUser strips a user record down to the fields a client is allowed
// to see. Pure function: whatever shape the input record is in, the output
// contains exactly this field set and never a password or reset code.
func SanitizeUser(u *User) map[string]any {
	sanitized := map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
	if u.ProfileImage != nil {
		sanitized["profileImage"] = *u.ProfileImage
	}
	return sanitized
}

// Password bundles a plaintext password with its bcrypt hash.
type Password struct {
	Plaintext *string
	Hash      string
}

// PasswordHashCost is deliberately above bcrypt.DefaultCost; these hashes
// guard real accounts.
const PasswordHashCost = 12

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), PasswordHashCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
