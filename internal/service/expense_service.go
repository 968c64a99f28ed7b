package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/storage"
)

// ExpenseService handles creation, update, deletion and reads of a
// couple's shared expenses.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the fields of a new expense. ExpenseDate
// defaults to the current time when zero.
type CreateExpenseInput struct {
	Description string
	Amount      float64
	Category    string
	PaidBy      string
	ExpenseDate int64
	Notes       string
}

// UpdateExpenseInput carries a partial update. Nil fields are left
// untouched. Notes distinguishes "absent" (nil) from "clear" (pointer
// to empty string).
type UpdateExpenseInput struct {
	Description *string
	Amount      *float64
	Category    *string
	PaidBy      *string
	ExpenseDate *int64
	Notes       *string
}

func validateExpense(e *models.Expense, members []models.Member) error {
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Message: "must not be empty"}
	}
	if e.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if !models.ValidCategory(e.Category) {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	for _, m := range members {
		if m.ID == e.PaidBy {
			return nil
		}
	}
	return &ValidationError{Field: "paidBy", Message: "must be a couple member"}
}

// CreateExpense validates and persists a new expense for the caller's
// couple, returning it joined to payer and author member info.
func (s *ExpenseService) CreateExpense(ctx context.Context, id Identity, input CreateExpenseInput) (*models.ExpenseWithUsers, error) {
	if id.UserID == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil || profile.CoupleID == "" {
		return nil, ErrNotPaired
	}

	couple, err := s.store.GetCoupleWithMembers(ctx, profile.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	if couple == nil {
		return nil, ErrNotPaired
	}

	expense := &models.Expense{
		CoupleID:    profile.CoupleID,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		PaidBy:      input.PaidBy,
		CreatedBy:   id.UserID,
		ExpenseDate: input.ExpenseDate,
		Notes:       input.Notes,
	}
	if expense.ExpenseDate == 0 {
		expense.ExpenseDate = time.Now().Unix()
	}
	if err := validateExpense(expense, couple.Members); err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "couple_id", expense.CoupleID, "amount", expense.Amount)

	return s.getCreated(ctx, expense.ID, expense.CoupleID)
}

// UpdateExpense applies a partial update to an expense. Only the author
// may update it; the updated row is re-validated as a whole.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id Identity, expenseID string, input UpdateExpenseInput) (*models.ExpenseWithUsers, error) {
	if id.UserID == "" {
		return nil, ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense == nil {
		return nil, ErrNotFound
	}
	if expense.CreatedBy != id.UserID {
		return nil, ErrForbidden
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.PaidBy != nil {
		expense.PaidBy = *input.PaidBy
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = *input.ExpenseDate
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	couple, err := s.store.GetCoupleWithMembers(ctx, expense.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	if couple == nil {
		return nil, ErrNotPaired
	}
	if err := validateExpense(expense, couple.Members); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID)

	return s.getCreated(ctx, expense.ID, expense.CoupleID)
}

// DeleteExpense removes an expense. Only the author may delete it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id Identity, expenseID string) error {
	if id.UserID == "" {
		return ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}
	if expense == nil {
		return ErrNotFound
	}
	if expense.CreatedBy != id.UserID {
		return ErrForbidden
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

// GetExpenses returns the couple's expenses, most recent expense date
// first, or an empty slice when the caller is unauthenticated, unpaired,
// or the read fails. Failures are logged, not surfaced.
func (s *ExpenseService) GetExpenses(ctx context.Context, id Identity) []*models.ExpenseWithUsers {
	if id.UserID == "" {
		return []*models.ExpenseWithUsers{}
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		slog.Error("GetExpenses failed to get profile", "user_id", id.UserID, "error", err)
		return []*models.ExpenseWithUsers{}
	}
	if profile == nil || profile.CoupleID == "" {
		return []*models.ExpenseWithUsers{}
	}

	expenses, err := s.store.ListExpenses(ctx, profile.CoupleID)
	if err != nil {
		slog.Error("GetExpenses failed", "couple_id", profile.CoupleID, "error", err)
		return []*models.ExpenseWithUsers{}
	}
	if expenses == nil {
		expenses = []*models.ExpenseWithUsers{}
	}
	return expenses
}

// GetExpenseByID returns one expense scoped to the caller's couple, or
// nil when the caller is unauthenticated, unpaired, the id belongs to
// another couple, or the read fails. Failures are logged, not surfaced.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, id Identity, expenseID string) *models.ExpenseWithUsers {
	if id.UserID == "" {
		return nil
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		slog.Error("GetExpenseByID failed to get profile", "user_id", id.UserID, "error", err)
		return nil
	}
	if profile == nil || profile.CoupleID == "" {
		return nil
	}

	expense, err := s.store.GetExpenseWithUsers(ctx, expenseID, profile.CoupleID)
	if err != nil {
		slog.Error("GetExpenseByID failed", "expense_id", expenseID, "error", err)
		return nil
	}
	return expense
}

// getCreated re-reads a freshly written expense joined to member info.
func (s *ExpenseService) getCreated(ctx context.Context, expenseID, coupleID string) (*models.ExpenseWithUsers, error) {
	expense, err := s.store.GetExpenseWithUsers(ctx, expenseID, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense == nil {
		return nil, fmt.Errorf("expense missing after write: %s", expenseID)
	}
	return expense, nil
}
