package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sisques-labs/pair-pay/internal/models"
	"github.com/sisques-labs/pair-pay/internal/storage"
	"github.com/sisques-labs/pair-pay/internal/storage/sqlite"
)

var (
	ana   = Identity{UserID: "user-ana", Email: "ana@example.com", FullName: "Ana García"}
	bruno = Identity{UserID: "user-bruno", Email: "bruno@example.com", FullName: "Bruno Díaz"}
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// pairUp creates a couple with ana and joins bruno, returning the couple ID.
func pairUp(t *testing.T, store storage.Store) string {
	t.Helper()

	couples := NewCoupleService(store)
	created, err := couples.CreateCouple(context.Background(), ana)
	if err != nil {
		t.Fatalf("CreateCouple failed: %v", err)
	}
	if _, err := couples.JoinCouple(context.Background(), bruno, created.InvitationCode); err != nil {
		t.Fatalf("JoinCouple failed: %v", err)
	}
	return created.ID
}

// errStore fails every read the degraded-read paths depend on.
type errStore struct {
	storage.Store
}

var errBackend = errors.New("backend unreachable")

func (errStore) GetProfile(context.Context, string) (*models.Profile, error) {
	return nil, errBackend
}

func (errStore) GetCoupleWithMembers(context.Context, string) (*models.CoupleWithMembers, error) {
	return nil, errBackend
}

func (errStore) ListExpenses(context.Context, string) ([]*models.ExpenseWithUsers, error) {
	return nil, errBackend
}

func (errStore) GetExpenseWithUsers(context.Context, string, string) (*models.ExpenseWithUsers, error) {
	return nil, errBackend
}

func (errStore) GetCoupleSnapshot(context.Context, string) (*storage.CoupleSnapshot, error) {
	return nil, errBackend
}

func (errStore) ListSettlements(context.Context, string) ([]*models.SettlementWithUsers, error) {
	return nil, errBackend
}
