package accounts

import (
	"context"
	"testing"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/medium"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/internal/schema"
	"harvest-market/internal/session"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testPolicy = session.Policy{MinCredentialLength: 6, HashCost: bcrypt.MinCost}

func newService() (*Service, *repository.Store) {
	store := repository.NewStore(medium.NewMemory(), "market", schema.StoreOptions()...)
	return NewService(store), store
}

func producerProfile() models.Fields {
	return models.Fields{
		"fullName":     models.String("Ravi Kumar"),
		"farmLocation": models.String("Rampur"),
	}
}

func purchaserProfile() models.Fields {
	return models.Fields{
		"businessName": models.String("Fresh Mart"),
		"businessType": models.String("retail"),
	}
}

func TestService_RegisterProducer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()
	sess := session.NewManager(store, testPolicy)

	res, err := svc.RegisterProducer(ctx, sess, " Ravi@Example.com ", "secret1", producerProfile())
	require.NoError(t, err)
	require.Equal(t, models.RoleProducer, res.Role)

	current, ok := sess.Current()
	require.True(t, ok)
	require.Equal(t, current.ID, res.PrincipalID)

	require.Equal(t, res.PrincipalID, res.Profile.StringField("uid"))
	require.Equal(t, "ravi@example.com", res.Profile.StringField("email"))
	require.Equal(t, "producer", res.Profile.StringField("role"))
	require.Equal(t, "active", res.Profile.StringField("status"))
	verified, _ := res.Profile.Fields["isVerified"].AsBool()
	require.False(t, verified)

	cached, ok := sess.Cached(res.PrincipalID)
	require.True(t, ok)
	require.Equal(t, models.RoleProducer, cached.Role)

	purchasers, err := store.GetAll(ctx, models.CollectionPurchasers)
	require.NoError(t, err)
	require.Empty(t, purchasers)
}

func TestService_RoleExclusivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		first         models.Role
		second        models.Role
		expectedError error
	}{
		{name: "producer_then_purchaser", first: models.RoleProducer, second: models.RolePurchaser, expectedError: marketerrors.ErrRoleConflict},
		{name: "purchaser_then_producer", first: models.RolePurchaser, second: models.RoleProducer, expectedError: marketerrors.ErrRoleConflict},
		{name: "producer_twice", first: models.RoleProducer, second: models.RoleProducer, expectedError: marketerrors.ErrIdentifierTaken},
		{name: "purchaser_twice", first: models.RolePurchaser, second: models.RolePurchaser, expectedError: marketerrors.ErrIdentifierTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc, store := newService()

			register := func(role models.Role, identifier string) error {
				sess := session.NewManager(store, testPolicy)
				var err error
				if role == models.RoleProducer {
					_, err = svc.RegisterProducer(ctx, sess, identifier, "secret1", producerProfile())
				} else {
					_, err = svc.RegisterPurchaser(ctx, sess, identifier, "secret1", purchaserProfile())
				}
				return err
			}

			require.NoError(t, register(tt.first, "someone@example.com"))
			require.ErrorIs(t, register(tt.second, "SOMEONE@example.com"), tt.expectedError)

			producers, err := store.GetAll(ctx, models.CollectionProducers)
			require.NoError(t, err)
			purchasers, err := store.GetAll(ctx, models.CollectionPurchasers)
			require.NoError(t, err)
			require.Equal(t, 1, len(producers)+len(purchasers))

			principals, err := store.GetAll(ctx, models.CollectionSessions)
			require.NoError(t, err)
			require.Len(t, principals, 1)
		})
	}
}

func TestService_LoginResolvesRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()

	_, err := svc.RegisterPurchaser(ctx, session.NewManager(store, testPolicy), "buyer@example.com", "secret1", purchaserProfile())
	require.NoError(t, err)

	sess := session.NewManager(store, testPolicy)
	res, err := svc.Login(ctx, sess, "buyer@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, models.RolePurchaser, res.Role)
	require.Equal(t, "Fresh Mart", res.Profile.StringField("businessName"))

	_, ok := sess.Cached(res.PrincipalID)
	require.True(t, ok)

	_, err = svc.Login(ctx, session.NewManager(store, testPolicy), "buyer@example.com", "wrong-one")
	require.ErrorIs(t, err, marketerrors.ErrNotFound)
}

func TestService_WhoAmIAndLogout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()
	sess := session.NewManager(store, testPolicy)

	_, err := svc.WhoAmI(ctx, sess)
	require.ErrorIs(t, err, marketerrors.ErrNotAuthenticated)

	registered, err := svc.RegisterProducer(ctx, sess, "farmer@example.com", "secret1", producerProfile())
	require.NoError(t, err)

	res, err := svc.WhoAmI(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, registered.PrincipalID, res.PrincipalID)
	require.Equal(t, models.RoleProducer, res.Role)

	svc.Logout(sess)
	_, err = svc.WhoAmI(ctx, sess)
	require.ErrorIs(t, err, marketerrors.ErrNotAuthenticated)
}

func TestService_PrincipalWithoutProfileIsUndetermined(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()
	sess := session.NewManager(store, testPolicy)

	_, err := sess.CreatePrincipal(ctx, "ghost@example.com", "secret1")
	require.NoError(t, err)

	res, err := svc.WhoAmI(ctx, sess)
	require.NoError(t, err)
	require.True(t, res.Undetermined())
}

func TestService_InvalidProfileReleasesIdentifier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()
	sess := session.NewManager(store, testPolicy)

	_, err := svc.RegisterProducer(ctx, sess, "farmer@example.com", "secret1", models.Fields{})
	require.ErrorIs(t, err, marketerrors.ErrSchemaViolation)

	_, ok := sess.Current()
	require.False(t, ok)
	principals, err := store.GetAll(ctx, models.CollectionSessions)
	require.NoError(t, err)
	require.Empty(t, principals)

	_, err = svc.RegisterProducer(ctx, sess, "farmer@example.com", "secret1", producerProfile())
	require.NoError(t, err)
}

func TestService_RegisterPropagatesCredentialErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := newService()

	_, err := svc.RegisterPurchaser(ctx, session.NewManager(store, testPolicy), "buyer@example.com", "123", purchaserProfile())
	require.ErrorIs(t, err, marketerrors.ErrWeakCredential)
}
