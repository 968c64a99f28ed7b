package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sisques-labs/pair-pay/internal/models"
)

const expenseWithUsersSelect = `
	SELECT e.id, e.couple_id, e.description, e.amount, e.category,
	       e.paid_by, e.created_by, e.expense_date, e.notes, e.created_at, e.updated_at,
	       pb.id, pb.email, pb.full_name,
	       cb.id, cb.email, cb.full_name
	FROM expenses e
	JOIN profiles pb ON pb.id = e.paid_by
	JOIN profiles cb ON cb.id = e.created_by`

// CreateExpense persists a new expense and bumps the couple version in
// the same transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now
	if expense.ExpenseDate == 0 {
		expense.ExpenseDate = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, couple_id, description, amount, category, paid_by,
		                       created_by, expense_date, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.CoupleID, expense.Description, expense.Amount, expense.Category,
		expense.PaidBy, expense.CreatedBy, expense.ExpenseDate, nullable(expense.Notes),
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := bumpCoupleVersion(ctx, tx, expense.CoupleID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID without couple scoping.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, couple_id, description, amount, category, paid_by, created_by,
		        expense_date, notes, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		id,
	).Scan(&expense.ID, &expense.CoupleID, &expense.Description, &expense.Amount,
		&expense.Category, &expense.PaidBy, &expense.CreatedBy, &expense.ExpenseDate,
		&notes, &expense.CreatedAt, &expense.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Notes = notes.String
	return expense, nil
}

// GetExpenseWithUsers retrieves an expense scoped to a couple, joined to
// the payer's and author's member info. An ID belonging to another couple
// yields (nil, nil).
func (s *SQLiteStore) GetExpenseWithUsers(ctx context.Context, id, coupleID string) (*models.ExpenseWithUsers, error) {
	row := s.db.QueryRowContext(ctx,
		expenseWithUsersSelect+" WHERE e.id = ? AND e.couple_id = ?",
		id, coupleID,
	)

	expense, err := scanExpenseWithUsers(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil // Not found within the couple's scope
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// ListExpenses retrieves a couple's expenses, most recent expense date
// first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, coupleID string) ([]*models.ExpenseWithUsers, error) {
	rows, err := s.db.QueryContext(ctx,
		expenseWithUsersSelect+" WHERE e.couple_id = ? ORDER BY e.expense_date DESC, e.created_at DESC",
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.ExpenseWithUsers
	for rows.Next() {
		expense, err := scanExpenseWithUsers(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// UpdateExpense overwrites the expense row and bumps the couple version.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount = ?, category = ?, paid_by = ?,
		     expense_date = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Description, expense.Amount, expense.Category, expense.PaidBy,
		expense.ExpenseDate, nullable(expense.Notes), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense not found: %s", expense.ID)
	}

	if err := bumpCoupleVersion(ctx, tx, expense.CoupleID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes the expense row and bumps the couple version.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var coupleID string
	err = tx.QueryRowContext(ctx, "SELECT couple_id FROM expenses WHERE id = ?", id).Scan(&coupleID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check expense existence: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := bumpCoupleVersion(ctx, tx, coupleID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanExpenseWithUsers scans one joined expense row.
func scanExpenseWithUsers(scan func(dest ...any) error) (*models.ExpenseWithUsers, error) {
	expense := &models.ExpenseWithUsers{}
	var notes, paidByName, createdByName sql.NullString

	err := scan(
		&expense.ID, &expense.CoupleID, &expense.Description, &expense.Amount,
		&expense.Category, &expense.PaidBy, &expense.CreatedBy, &expense.ExpenseDate,
		&notes, &expense.CreatedAt, &expense.UpdatedAt,
		&expense.PaidByUser.ID, &expense.PaidByUser.Email, &paidByName,
		&expense.CreatedByUser.ID, &expense.CreatedByUser.Email, &createdByName,
	)
	if err != nil {
		return nil, err
	}

	expense.Notes = notes.String
	expense.PaidByUser.FullName = paidByName.String
	expense.CreatedByUser.FullName = createdByName.String
	return expense, nil
}
