package models

import "time"

// User represents a registered account. It belongs to the identity layer;
// the expense domain only ever sees the derived Profile.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// FullName is the optional display name given at registration.
	FullName string `json:"fullName,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password. Never
	// serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last account update.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser creates a User with the given email, display name and password
// hash. The ID is left empty for the store to assign.
func NewUser(email, fullName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
