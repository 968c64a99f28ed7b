package models

// Couple pairs up to two Profiles. Membership lives on the Profile side
// (Profile.CoupleID); a couple is never deleted and never holds more than
// two members.
type Couple struct {
	// ID is the unique identifier for the couple (UUID format).
	ID string `json:"id"`

	// InvitationCode is the globally unique 8-character join code.
	InvitationCode string `json:"invitationCode"`

	// CreatedBy is the profile ID of the member who created the couple.
	CreatedBy string `json:"createdBy"`

	// Version counts balance-affecting writes (expense mutations and
	// settlements). Settlement creation compare-and-sets it so two
	// concurrent settlements cannot both clear the same balance.
	Version int64 `json:"-"`

	// CreatedAt is the Unix timestamp when the couple was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last balance-affecting write.
	UpdatedAt int64 `json:"updatedAt"`
}

// CoupleWithMembers is a Couple joined to its member profiles, as
// returned by getCurrentCouple.
type CoupleWithMembers struct {
	Couple
	Members []Member `json:"members"`
}
