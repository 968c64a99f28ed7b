// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/sisques-labs/pair-pay/internal/models"
)

var (
	// ErrCoupleFull is returned by JoinCouple when the couple already has
	// two member profiles. Detected inside the join transaction so a
	// concurrent join cannot create a third member.
	ErrCoupleFull = errors.New("couple already has two members")

	// ErrStaleBalance is returned by CreateSettlement when the couple's
	// version no longer matches the one the balance was computed from,
	// meaning an expense or another settlement landed in between.
	ErrStaleBalance = errors.New("couple balance changed since it was computed")
)

// CoupleSnapshot is everything the balance engine needs, read in one
// call: the couple row (carrying the version the snapshot corresponds
// to), members, expenses and settlements.
type CoupleSnapshot struct {
	Couple      models.Couple
	Members     []models.Member
	Expenses    []models.Expense
	Settlements []models.Settlement
}

// Store defines the interface for PairPay persistence. The abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
//
// Lookups of a single row by key return (nil, nil) when no row matches;
// errors are reserved for collaborator failures.
type Store interface {
	// CreateUser persists a new identity account. The user.ID field is
	// populated by the store when empty.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpsertProfile creates the profile row or refreshes its email and
	// full name from the identity claims. CoupleID is never touched.
	UpsertProfile(ctx context.Context, profile *models.Profile) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	// CreateCouple atomically inserts the couple and points the creator's
	// profile (couple.CreatedBy) at it. The couple.ID field is populated
	// by the store when empty.
	CreateCouple(ctx context.Context, couple *models.Couple) error

	// GetCoupleByCode retrieves a couple by invitation code. The code is
	// matched exactly; callers normalize case first.
	GetCoupleByCode(ctx context.Context, code string) (*models.Couple, error)

	// GetCoupleWithMembers retrieves a couple joined to its members.
	GetCoupleWithMembers(ctx context.Context, id string) (*models.CoupleWithMembers, error)

	// JoinCouple atomically re-checks the member count and points the
	// profile at the couple. Returns ErrCoupleFull when the couple
	// already has two members.
	JoinCouple(ctx context.Context, coupleID, profileID string) error

	// CreateExpense persists a new expense and bumps the couple version.
	// The expense.ID field is populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, unscoped. Callers enforce
	// couple scoping and ownership.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// GetExpenseWithUsers retrieves an expense by ID scoped to a couple,
	// joined to the payer's and author's member info. An ID belonging to
	// another couple yields (nil, nil).
	GetExpenseWithUsers(ctx context.Context, id, coupleID string) (*models.ExpenseWithUsers, error)

	// ListExpenses retrieves a couple's expenses joined to member info,
	// most recent expense date first.
	ListExpenses(ctx context.Context, coupleID string) ([]*models.ExpenseWithUsers, error)

	// UpdateExpense overwrites an expense row and bumps the couple
	// version.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense row and bumps the couple version.
	DeleteExpense(ctx context.Context, id string) error

	// GetCoupleSnapshot reads the couple, members, expenses and
	// settlements in one call for balance computation.
	GetCoupleSnapshot(ctx context.Context, coupleID string) (*CoupleSnapshot, error)

	// CreateSettlement atomically inserts the settlement, guarded by a
	// compare-and-set on the couple version the balance was computed
	// from. Returns ErrStaleBalance when the version moved.
	CreateSettlement(ctx context.Context, settlement *models.Settlement, expectedVersion int64) error

	// ListSettlements retrieves a couple's settlements joined to both
	// parties' member info, most recent first.
	ListSettlements(ctx context.Context, coupleID string) ([]*models.SettlementWithUsers, error)

	// Close releases any resources held by the store.
	Close() error
}
