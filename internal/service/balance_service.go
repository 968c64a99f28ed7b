package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sisques-labs/pair-pay/internal/balance"
	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/storage"
)

// BalanceService computes balances and records settlements.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetCoupleBalance returns the couple's current balance, or nil when the
// caller is unauthenticated, unpaired, the couple has fewer than two
// members, or the read fails. Failures are logged, not surfaced.
func (s *BalanceService) GetCoupleBalance(ctx context.Context, id Identity) *balance.CoupleBalance {
	if id.UserID == "" {
		return nil
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		slog.Error("GetCoupleBalance failed to get profile", "user_id", id.UserID, "error", err)
		return nil
	}
	if profile == nil || profile.CoupleID == "" {
		return nil
	}

	snap, err := s.store.GetCoupleSnapshot(ctx, profile.CoupleID)
	if err != nil {
		slog.Error("GetCoupleBalance failed", "couple_id", profile.CoupleID, "error", err)
		return nil
	}

	pair, ok := balance.NewPair(snap.Members)
	if !ok {
		return nil
	}
	return balance.Compute(pair, snap.Expenses, snap.Settlements)
}

// CreateSettlement recomputes the balance fresh and records a settlement
// clearing it: fromUser is the owing member, toUser the owed one, amount
// the net balance. The insert compare-and-sets the couple version the
// balance was computed from, so a concurrent expense or settlement
// surfaces as ErrBalanceChanged instead of a double-recorded clearing.
func (s *BalanceService) CreateSettlement(ctx context.Context, id Identity, notes string) (*models.Settlement, error) {
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

	snap, err := s.store.GetCoupleSnapshot(ctx, profile.CoupleID)
	if err != nil {
		slog.Error("CreateSettlement failed to read snapshot", "couple_id", profile.CoupleID, "error", err)
		return nil, ErrNoBalance
	}
	pair, ok := balance.NewPair(snap.Members)
	if !ok {
		return nil, ErrNoBalance
	}

	bal := balance.Compute(pair, snap.Expenses, snap.Settlements)
	if bal.NetBalance == 0 {
		return nil, ErrAlreadySettled
	}

	settlement := &models.Settlement{
		CoupleID: profile.CoupleID,
		FromUser: bal.OwedBy,
		ToUser:   bal.OwedTo,
		Amount:   bal.NetBalance,
		Notes:    notes,
	}
	if err := s.store.CreateSettlement(ctx, settlement, snap.Couple.Version); err != nil {
		if errors.Is(err, storage.ErrStaleBalance) {
			return nil, ErrBalanceChanged
		}
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"couple_id", settlement.CoupleID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// GetSettlements returns the couple's settlements, most recent first, or
// an empty slice when the caller is unauthenticated, unpaired, or the
// read fails. Failures are logged, not surfaced.
func (s *BalanceService) GetSettlements(ctx context.Context, id Identity) []*models.SettlementWithUsers {
	if id.UserID == "" {
		return []*models.SettlementWithUsers{}
	}

	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err != nil {
		slog.Error("GetSettlements failed to get profile", "user_id", id.UserID, "error", err)
		return []*models.SettlementWithUsers{}
	}
	if profile == nil || profile.CoupleID == "" {
		return []*models.SettlementWithUsers{}
	}

	settlements, err := s.store.ListSettlements(ctx, profile.CoupleID)
	if err != nil {
		slog.Error("GetSettlements failed", "couple_id", profile.CoupleID, "error", err)
		return []*models.SettlementWithUsers{}
	}
	if settlements == nil {
		settlements = []*models.SettlementWithUsers{}
	}
	return settlements
}
