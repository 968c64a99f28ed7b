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

// GetCoupleSnapshot reads the couple, its members, expenses and
// settlements in one call. The returned couple carries the version the
// snapshot corresponds to, for the CreateSettlement compare-and-set.
func (s *SQLiteStore) GetCoupleSnapshot(ctx context.Context, coupleID string) (*storage.CoupleSnapshot, error) {
	couple, err := s.getCouple(ctx, "id = ?", coupleID)
	if err != nil {
		return nil, err
	}
	if couple == nil {
		return nil, fmt.Errorf("couple not found: %s", coupleID)
	}

	members, err := s.coupleMembers(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.coupleExpenses(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.coupleSettlements(ctx, coupleID)
	if err != nil {
		return nil, err
	}

	return &storage.CoupleSnapshot{
		Couple:      *couple,
		Members:     members,
		Expenses:    expenses,
		Settlements: settlements,
	}, nil
}

func (s *SQLiteStore) coupleExpenses(ctx context.Context, coupleID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, couple_id, description, amount, category, paid_by, created_by,
		        expense_date, notes, created_at, updated_at
		 FROM expenses WHERE couple_id = ?`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.CoupleID, &e.Description, &e.Amount, &e.Category,
			&e.PaidBy, &e.CreatedBy, &e.ExpenseDate, &notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Notes = notes.String
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

func (s *SQLiteStore) coupleSettlements(ctx context.Context, coupleID string) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, couple_id, from_user, to_user, amount, settled_at, notes
		 FROM settlements WHERE couple_id = ?`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var notes sql.NullString
		if err := rows.Scan(&st.ID, &st.CoupleID, &st.FromUser, &st.ToUser,
			&st.Amount, &st.SettledAt, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.Notes = notes.String
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// CreateSettlement inserts the settlement guarded by a compare-and-set on
// the couple version. If any expense mutation or settlement bumped the
// version since the balance snapshot was read, nothing is written and
// storage.ErrStaleBalance is returned.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement, expectedVersion int64) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.SettledAt == 0 {
		settlement.SettledAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE couples SET version = version + 1, updated_at = ? WHERE id = ? AND version = ?",
		time.Now().Unix(), settlement.CoupleID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to check couple version: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrStaleBalance
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, couple_id, from_user, to_user, amount, settled_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.CoupleID, settlement.FromUser, settlement.ToUser,
		settlement.Amount, settlement.SettledAt, nullable(settlement.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSettlements retrieves a couple's settlements joined to both
// parties' member info, most recent first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, coupleID string) ([]*models.SettlementWithUsers, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT st.id, st.couple_id, st.from_user, st.to_user, st.amount, st.settled_at, st.notes,
		        pf.id, pf.email, pf.full_name,
		        pt.id, pt.email, pt.full_name
		 FROM settlements st
		 JOIN profiles pf ON pf.id = st.from_user
		 JOIN profiles pt ON pt.id = st.to_user
		 WHERE st.couple_id = ?
		 ORDER BY st.settled_at DESC`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.SettlementWithUsers
	for rows.Next() {
		st := &models.SettlementWithUsers{}
		var notes, fromName, toName sql.NullString
		if err := rows.Scan(&st.ID, &st.CoupleID, &st.FromUser, &st.ToUser, &st.Amount,
			&st.SettledAt, &notes,
			&st.FromUserProfile.ID, &st.FromUserProfile.Email, &fromName,
			&st.ToUserProfile.ID, &st.ToUserProfile.Email, &toName); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.Notes = notes.String
		st.FromUserProfile.FullName = fromName.String
		st.ToUserProfile.FullName = toName.String
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
