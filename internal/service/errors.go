package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the caller carries no identity.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrMissingEmail means the identity record has no email, which the
	// profile upsert requires.
	ErrMissingEmail = errors.New("authenticated user has no email")

	// ErrAlreadyPaired means the caller's profile already points at a couple.
	ErrAlreadyPaired = errors.New("user already belongs to a couple")

	// ErrNotPaired means the caller's profile points at no couple.
	ErrNotPaired = errors.New("user does not belong to a couple")

	// ErrInvalidCode means the invitation code matched no couple.
	ErrInvalidCode = errors.New("invitation code does not match any couple")

	// ErrCoupleFull means the couple already has two members.
	ErrCoupleFull = errors.New("couple already has two members")

	// ErrNotFound means the record id resolved to nothing within the
	// caller's scope.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the caller is not the record's creator.
	ErrForbidden = errors.New("caller may not modify this record")

	// ErrNoBalance means the balance could not be computed (no couple
	// snapshot, or fewer than two members).
	ErrNoBalance = errors.New("balance could not be computed")

	// ErrAlreadySettled means the net balance is zero, so there is
	// nothing to settle.
	ErrAlreadySettled = errors.New("no pending balance to settle")

	// ErrBalanceChanged means an expense or settlement landed between
	// computing the balance and recording the settlement.
	ErrBalanceChanged = errors.New("balance changed while settling")
)

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
