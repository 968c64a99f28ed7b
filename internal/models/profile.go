package models

// Profile is the expense-domain identity of a user. Its ID equals the
// identity layer's user ID. The row is created lazily, on the first
// couple-create or couple-join action, so a User can exist without a
// Profile but never the other way around.
type Profile struct {
	// ID is the identity layer's user ID.
	ID string

	// Email is copied from the identity claims on every upsert.
	Email string

	// FullName is the optional display name, empty when the identity
	// record carries none.
	FullName string

	// CoupleID is the couple this profile belongs to, empty until paired.
	CoupleID string

	// CreatedAt is the Unix timestamp when the profile row was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile update.
	UpdatedAt int64
}

// Member is the public slice of a Profile attached to couples, expenses
// and settlements when returning them to callers.
type Member struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}
