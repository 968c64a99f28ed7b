package models

// Expense is a shared cost belonging to a couple. It is always split
// exactly 50/50 between the couple's two members regardless of who paid.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// CoupleID is the couple this expense belongs to.
	CoupleID string `json:"coupleId"`

	// Description is the human-readable label for the expense.
	Description string `json:"description"`

	// Amount is the full cost. Must be positive.
	Amount float64 `json:"amount"`

	// Category is one of the fixed category IDs (see Categories).
	Category string `json:"category"`

	// PaidBy is the profile ID of the member who paid. Must be a member
	// of the couple.
	PaidBy string `json:"paidBy"`

	// CreatedBy is the profile ID of the author. Only the author may
	// update or delete the expense.
	CreatedBy string `json:"createdBy"`

	// ExpenseDate is the Unix timestamp of when the cost was incurred,
	// defaulting to creation time.
	ExpenseDate int64 `json:"expenseDate"`

	// Notes is an optional free-text note, empty when absent.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last update.
	UpdatedAt int64 `json:"updatedAt"`
}

// ExpenseWithUsers is an Expense joined to the payer's and author's
// member info, as returned by the expense read operations.
type ExpenseWithUsers struct {
	Expense
	PaidByUser    Member `json:"paidByUser"`
	CreatedByUser Member `json:"createdByUser"`
}
