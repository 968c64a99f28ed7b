package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sisques-labs/pair-pay/internal/invite"
	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/storage"
)

// maxCodeAttempts bounds the invitation-code uniqueness retry loop.
// With a 32^8 code space a second attempt is already vanishingly rare.
const maxCodeAttempts = 10

// CoupleService handles couple creation, joining and lookup.
type CoupleService struct {
	store storage.Store
}

// NewCoupleService creates a new CoupleService with the given storage backend.
func NewCoupleService(store storage.Store) *CoupleService {
	return &CoupleService{store: store}
}

// ensureProfile lazily creates or refreshes the caller's profile row
// from the identity claims and returns it. The profile's CoupleID is
// preserved across upserts.
func (s *CoupleService) ensureProfile(ctx context.Context, id Identity) (*models.Profile, error) {
	if id.UserID == "" {
		return nil, ErrUnauthenticated
	}
	if id.Email == "" {
		return nil, ErrMissingEmail
	}

	profile := &models.Profile{
		ID:       id.UserID,
		Email:    id.Email,
		FullName: id.FullName,
	}
	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile missing after upsert: %s", id.UserID)
	}
	return profile, nil
}

// CreateCouple creates a couple with a fresh invitation code and links
// the caller as its first member. Fails with ErrAlreadyPaired when the
// caller already belongs to a couple.
func (s *CoupleService) CreateCouple(ctx context.Context, id Identity) (*models.CoupleWithMembers, error) {
	profile, err := s.ensureProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.CoupleID != "" {
		return nil, ErrAlreadyPaired
	}

	// Invitation codes are globally unique; regenerate on collision.
	var code string
	for attempt := 0; ; attempt++ {
		if attempt == maxCodeAttempts {
			return nil, fmt.Errorf("could not find a unique invitation code after %d attempts", maxCodeAttempts)
		}
		code = invite.NewCode()
		existing, err := s.store.GetCoupleByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check invitation code: %w", err)
		}
		if existing == nil {
			break
		}
	}

	couple := &models.Couple{
		InvitationCode: code,
		CreatedBy:      id.UserID,
	}
	if err := s.store.CreateCouple(ctx, couple); err != nil {
		return nil, fmt.Errorf("failed to create couple: %w", err)
	}

	slog.Info("Couple created", "couple_id", couple.ID, "created_by", id.UserID)

	result, err := s.store.GetCoupleWithMembers(ctx, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	return result, nil
}

// JoinCouple links the caller to the couple behind the invitation code.
// The code is case-insensitive. Fails with ErrInvalidCode when no couple
// matches and ErrCoupleFull when the couple already has two members.
func (s *CoupleService) JoinCouple(ctx context.Context, id Identity, code string) (*models.CoupleWithMembers, error) {
	profile, err := s.ensureProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile.CoupleID != "" {
		return nil, ErrAlreadyPaired
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != invite.CodeLength {
		return nil, ErrInvalidCode
	}

	couple, err := s.store.GetCoupleByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitation code: %w", err)
	}
	if couple == nil {
		return nil, ErrInvalidCode
	}

	if err := s.store.JoinCouple(ctx, couple.ID, id.UserID); err != nil {
		if errors.Is(err, storage.ErrCoupleFull) {
			return nil, ErrCoupleFull
		}
		return nil, fmt.Errorf("failed to join couple: %w", err)
	}

	slog.Info("Couple joined", "couple_id", couple.ID, "user_id", id.UserID)

	result, err := s.store.GetCoupleWithMembers(ctx, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	return result, nil
}

// GetCurrentCouple returns the caller's couple with its members, or nil
// when the caller is unauthenticated, unpaired, or the read fails.
// Failures are logged, not surfaced; callers cannot distinguish "no
// couple" from "backend unreachable".
func (s *CoupleService) GetCurrentCouple(ctx context.Context, id Identity) *models.CoupleWithMembers {
	if id.UserID == "" {
		return nil
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		slog.Error("GetCurrentCouple failed to get profile", "user_id", id.UserID, "error", err)
		return nil
	}
	if profile == nil || profile.CoupleID == "" {
		return nil
	}

	couple, err := s.store.GetCoupleWithMembers(ctx, profile.CoupleID)
	if err != nil {
		slog.Error("GetCurrentCouple failed to get couple", "couple_id", profile.CoupleID, "error", err)
		return nil
	}
	return couple
}
