package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/storage"
)

// CreateCouple inserts the couple and points the creator's profile at it
// in a single transaction, so no caller ever observes a couple without
// its creator or vice versa.
func (s *SQLiteStore) CreateCouple(ctx context.Context, couple *models.Couple) error {
	if couple.ID == "" {
		couple.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if couple.CreatedAt == 0 {
		couple.CreatedAt = now
	}
	if couple.UpdatedAt == 0 {
		couple.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO couples (id, invitation_code, created_by, version, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, ?)`,
		couple.ID, couple.InvitationCode, couple.CreatedBy, couple.CreatedAt, couple.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert couple: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE profiles SET couple_id = ?, updated_at = ? WHERE id = ?",
		couple.ID, now, couple.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to link creator profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("creator profile not found: %s", couple.CreatedBy)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetCoupleByCode retrieves a couple by its invitation code.
func (s *SQLiteStore) GetCoupleByCode(ctx context.Context, code string) (*models.Couple, error) {
	return s.getCouple(ctx, "invitation_code = ?", code)
}

func (s *SQLiteStore) getCouple(ctx context.Context, where string, arg any) (*models.Couple, error) {
	couple := &models.Couple{}

	err := s.db.QueryRowContext(ctx,
		`SELECT id, invitation_code, created_by, version, created_at, updated_at
		 FROM couples WHERE `+where,
		arg,
	).Scan(&couple.ID, &couple.InvitationCode, &couple.CreatedBy, &couple.Version,
		&couple.CreatedAt, &couple.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Couple not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}

	return couple, nil
}

// GetCoupleWithMembers retrieves a couple joined to its member profiles.
func (s *SQLiteStore) GetCoupleWithMembers(ctx context.Context, id string) (*models.CoupleWithMembers, error) {
	couple, err := s.getCouple(ctx, "id = ?", id)
	if err != nil || couple == nil {
		return nil, err
	}

	members, err := s.coupleMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.CoupleWithMembers{Couple: *couple, Members: members}, nil
}

// coupleMembers lists a couple's member profiles as public member info,
// oldest membership first.
func (s *SQLiteStore) coupleMembers(ctx context.Context, coupleID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, full_name FROM profiles WHERE couple_id = ? ORDER BY created_at, id`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var fullName sql.NullString
		if err := rows.Scan(&m.ID, &m.Email, &fullName); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.FullName = fullName.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// JoinCouple points the profile at the couple. The member count is
// re-checked inside the transaction so two concurrent joins cannot both
// take the second slot.
func (s *SQLiteStore) JoinCouple(ctx context.Context, coupleID, profileID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var memberCount int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM profiles WHERE couple_id = ?",
		coupleID,
	).Scan(&memberCount)
	if err != nil {
		return fmt.Errorf("failed to count couple members: %w", err)
	}
	if memberCount >= 2 {
		return storage.ErrCoupleFull
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE profiles SET couple_id = ?, updated_at = ? WHERE id = ?",
		coupleID, time.Now().Unix(), profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to join couple: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile not found: %s", profileID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
