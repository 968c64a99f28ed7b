// Package models defines the core domain models for PairPay.
//
// PairPay tracks shared expenses for two-person households. The models
// mirror the persisted entities:
//   - User: a registered account owned by the identity layer
//   - Profile: the expense-tracking identity, lazily created from a User
//   - Couple: a pairing of up to two Profiles, joined by invitation code
//   - Expense: a shared cost, always split 50/50 between the members
//   - Settlement: a recorded payment that clears the running balance
//
// Relationships use ID strings instead of pointers to avoid circular
// references. A Profile's CoupleID is a back-reference; the Couple owns
// its Expenses and Settlements.
package models
