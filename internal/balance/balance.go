// Package balance computes the running 50/50 balance of a couple from
// its expenses and prior settlements.
package balance

import (
	"math"

	"github.com/sisques-labs/pair-pay/internal/models"
)

// Pair is a couple with exactly two members. Constructing one through
// NewPair is the only way to call Compute, which keeps the two-member
// precondition out of the arithmetic.
type Pair struct {
	User1 models.Member
	User2 models.Member
}

// NewPair builds a Pair from a couple's member list. ok is false unless
// the list holds exactly two members; callers must treat that as "no
// balance available", which is distinct from a zero balance.
func NewPair(members []models.Member) (Pair, bool) {
	if len(members) != 2 {
		return Pair{}, false
	}
	return Pair{User1: members[0], User2: members[1]}, true
}

// Party is one member's side of a computed balance.
type Party struct {
	UserID    string  `json:"userId"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName,omitempty"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	Balance   float64 `json:"balance"`
}

// CoupleBalance is the derived balance of a couple. OwedBy/OwedTo give
// the direction of NetBalance; when NetBalance is zero the couple is
// balanced and the direction carries no meaning.
type CoupleBalance struct {
	User1      Party   `json:"user1"`
	User2      Party   `json:"user2"`
	NetBalance float64 `json:"netBalance"`
	OwedBy     string  `json:"owedBy"`
	OwedTo     string  `json:"owedTo"`
}

// Compute derives the couple's balance.
//
// Each member's fair share is half the expense total regardless of who
// paid. A member's balance is what they paid, minus their share, minus
// the settlements they paid, plus the settlements the other member paid;
// positive means they are owed, negative means they owe. The settlement
// terms deliberately reproduce the production arithmetic as-is: settling
// moves the balance by twice the settled amount rather than cancelling
// it, so a settle-then-recompute round trip does not return zero (see
// TestCompute_SettlementLiteralArithmetic). Do not "fix" the signs here
// without migrating stored settlements.
//
// All figures are rounded half-away-from-zero to 2 decimals, so a
// settlement created from NetBalance always matches the displayed value.
func Compute(pair Pair, expenses []models.Expense, settlements []models.Settlement) *CoupleBalance {
	var totalExpenses, user1Paid, user2Paid float64
	for _, e := range expenses {
		totalExpenses += e.Amount
		switch e.PaidBy {
		case pair.User1.ID:
			user1Paid += e.Amount
		case pair.User2.ID:
			user2Paid += e.Amount
		}
	}
	halfExpenses := totalExpenses / 2

	var user1SettlementsPaid, user2SettlementsPaid float64
	for _, s := range settlements {
		switch s.FromUser {
		case pair.User1.ID:
			user1SettlementsPaid += s.Amount
		case pair.User2.ID:
			user2SettlementsPaid += s.Amount
		}
	}

	user1Balance := round2(user1Paid - halfExpenses - user1SettlementsPaid + user2SettlementsPaid)
	user2Balance := round2(user2Paid - halfExpenses - user2SettlementsPaid + user1SettlementsPaid)

	netBalance := math.Abs(user1Balance)
	owedBy, owedTo := pair.User2.ID, pair.User1.ID
	if user1Balance < 0 {
		owedBy, owedTo = pair.User1.ID, pair.User2.ID
	}

	return &CoupleBalance{
		User1: Party{
			UserID:    pair.User1.ID,
			Email:     pair.User1.Email,
			FullName:  pair.User1.FullName,
			TotalPaid: round2(user1Paid),
			TotalOwed: round2(halfExpenses),
			Balance:   user1Balance,
		},
		User2: Party{
			UserID:    pair.User2.ID,
			Email:     pair.User2.Email,
			FullName:  pair.User2.FullName,
			TotalPaid: round2(user2Paid),
			TotalOwed: round2(halfExpenses),
			Balance:   user2Balance,
		},
		NetBalance: netBalance,
		OwedBy:     owedBy,
		OwedTo:     owedTo,
	}
}

// round2 rounds to 2 decimals, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
