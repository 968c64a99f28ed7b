package models

// Settlement records that one member paid the other to clear the running
// balance. FromUser is the member who owed (and paid), ToUser the member
// who was owed. Amount equals the couple's net balance at the moment of
// creation. Settlements are immutable.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// CoupleID is the couple this settlement belongs to.
	CoupleID string `json:"coupleId"`

	// FromUser is the profile ID of the member who paid.
	FromUser string `json:"fromUser"`

	// ToUser is the profile ID of the member who received the payment.
	ToUser string `json:"toUser"`

	// Amount is the settled amount, always positive.
	Amount float64 `json:"amount"`

	// SettledAt is the Unix timestamp when the settlement was recorded.
	SettledAt int64 `json:"settledAt"`

	// Notes is an optional free-text note, empty when absent.
	Notes string `json:"notes,omitempty"`
}

// SettlementWithUsers is a Settlement joined to both parties' member
// info, as returned by getSettlements.
type SettlementWithUsers struct {
	Settlement
	FromUserProfile Member `json:"fromUserProfile"`
	ToUserProfile   Member `json:"toUserProfile"`
}
