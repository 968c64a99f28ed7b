package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sisques-labs/pair-pay/internal/models"
)

// UpsertProfile creates the profile row or refreshes email/full name from
// the identity claims. An existing CoupleID is preserved; a full name is
// only overwritten when the claims carry one.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	now := time.Now().Unix()
	if profile.CreatedAt == 0 {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, full_name, couple_id, created_at, updated_at)
		 VALUES (?, ?, ?, NULL, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     email = excluded.email,
		     full_name = COALESCE(excluded.full_name, profiles.full_name),
		     updated_at = excluded.updated_at`,
		profile.ID, profile.Email, nullable(profile.FullName),
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetProfile retrieves a profile by ID.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	profile := &models.Profile{}
	var fullName, coupleID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, full_name, couple_id, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		id,
	).Scan(&profile.ID, &profile.Email, &fullName, &coupleID, &profile.CreatedAt, &profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Profile not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.FullName = fullName.String
	profile.CoupleID = coupleID.String
	return profile, nil
}
