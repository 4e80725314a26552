package seed

import (
	"context"
	"strings"
	"testing"

	"harvest-market/internal/accounts"
	"harvest-market/internal/ledger"
	"harvest-market/internal/marketerrors"
	"harvest-market/internal/medium"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/internal/schema"
	"harvest-market/internal/session"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSeeder() (*Seeder, *repository.Store) {
	store := repository.NewStore(medium.NewMemory(), "market", schema.StoreOptions()...)
	policy := session.Policy{HashCost: bcrypt.MinCost}
	return &Seeder{
		Store:      store,
		Accounts:   accounts.NewService(store),
		Ledger:     ledger.NewLedger(store, nil),
		NewSession: func() accounts.Session { return session.NewManager(store, policy) },
	}, store
}

func TestDefault(t *testing.T) {
	t.Parallel()
	f, err := Default()
	require.NoError(t, err)
	require.Len(t, f.Producers, 3)
	require.Len(t, f.Purchasers, 3)
	require.Len(t, f.Listings, 3)
	require.Equal(t, "Organic Wheat", f.Listings[0].Title)
	require.Equal(t, 25.0, f.Listings[0].BasePrice)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("farmers:\n  - email: a@example.com\n"))
	require.Error(t, err)
}

func TestSeeder_ApplyIsRepeatable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, store := newSeeder()
	f, err := Default()
	require.NoError(t, err)

	report, err := s.Apply(ctx, f)
	require.NoError(t, err)
	require.Equal(t, Report{Producers: 3, Purchasers: 3, Auctions: 3}, report)

	again, err := s.Apply(ctx, f)
	require.NoError(t, err)
	require.Equal(t, Report{Skipped: 9}, again)

	auctions, err := s.Ledger.ActiveAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, auctions, 3)

	producers, err := store.GetAll(ctx, models.CollectionProducers)
	require.NoError(t, err)
	require.Len(t, producers, 3)
	methods, ok := producers[0].Fields["farmingMethods"].AsArray()
	require.True(t, ok)
	require.NotEmpty(t, methods)
}

func TestSeeder_UnknownProducer(t *testing.T) {
	t.Parallel()
	s, _ := newSeeder()

	_, err := s.Apply(context.Background(), &Fixtures{
		Listings: []Listing{{Producer: "nobody@example.com", Title: "Onions", Quantity: 1, BasePrice: 2}},
	})
	require.ErrorContains(t, err, "unknown producer")
}

func TestSeeder_RoleConflict(t *testing.T) {
	t.Parallel()
	s, _ := newSeeder()

	_, err := s.Apply(context.Background(), &Fixtures{
		Producers: []Account{{Email: "dual@example.com", Password: "secret1", Profile: map[string]any{"fullName": "Dual"}}},
		Purchasers: []Account{{Email: "dual@example.com", Password: "secret1", Profile: map[string]any{"businessName": "Dual Ltd"}}},
	})
	require.ErrorIs(t, err, marketerrors.ErrRoleConflict)
}
