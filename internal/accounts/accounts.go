// Package accounts ties principals to marketplace profiles: registration
// under exactly one role, login with role resolution, and logout.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"harvest-market/internal/identity"
	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"
)

// Session is the slice of a session.Manager the account flows drive
type Session interface {
	identity.Cache
	CreatePrincipal(ctx context.Context, identifier, credential string) (models.Principal, error)
	Authenticate(ctx context.Context, identifier, credential string) (models.Principal, error)
	EndSession()
	Current() (models.Principal, bool)
}

// Service implements the account flows over the record store
type Service struct {
	store repository.DocumentStore
}

// NewService creates the account service.
func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

// RegisterProducer creates a principal with a producer profile and signs it in
func (s *Service) RegisterProducer(ctx context.Context, sess Session, identifier, credential string, profile models.Fields) (models.Resolution, error) {
	return s.register(ctx, sess, models.RoleProducer, identifier, credential, profile)
}

// RegisterPurchaser creates a principal with a purchaser profile and signs it in
func (s *Service) RegisterPurchaser(ctx context.Context, sess Session, identifier, credential string, profile models.Fields) (models.Resolution, error) {
	return s.register(ctx, sess, models.RolePurchaser, identifier, credential, profile)
}

func (s *Service) register(ctx context.Context, sess Session, role models.Role, identifier, credential string, profile models.Fields) (models.Resolution, error) {
	collection, ok := role.ProfileCollection()
	if !ok {
		return models.Resolution{}, fmt.Errorf("accounts: cannot register role %q", role)
	}
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	existing, err := s.profileRole(ctx, identifier)
	if err != nil {
		return models.Resolution{}, err
	}
	switch {
	case existing == role:
		return models.Resolution{}, fmt.Errorf("accounts: %s: %w", identifier, marketerrors.ErrIdentifierTaken)
	case existing != "":
		return models.Resolution{}, fmt.Errorf("accounts: %s is registered as %s: %w", identifier, existing, marketerrors.ErrRoleConflict)
	}

	principal, err := sess.CreatePrincipal(ctx, identifier, credential)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("accounts: register %s: %w", role, err)
	}

	fields := profile.Clone()
	if fields == nil {
		fields = models.Fields{}
	}
	fields[identity.FieldUID] = models.String(principal.ID)
	fields[identity.FieldIdentifier] = models.String(identifier)
	fields["role"] = models.String(string(role))
	fields["isVerified"] = models.Bool(false)
	fields["status"] = models.String("active")

	profileID, err := s.store.Insert(ctx, collection, fields)
	if err != nil {
		s.abandon(ctx, sess, principal)
		return models.Resolution{}, fmt.Errorf("accounts: store %s profile: %w", role, err)
	}
	doc, err := s.store.GetByID(ctx, collection, profileID)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("accounts: reload %s profile: %w", role, err)
	}

	res := models.Resolution{PrincipalID: principal.ID, Role: role, Profile: doc}
	sess.Remember(res)

	utils.Info("accounts: registered", map[string]any{
		"principal_id": principal.ID,
		"role":         string(role),
		"profile_id":   profileID,
	})
	return res, nil
}

// abandon removes a principal whose profile could not be stored, so the
// identifier can be registered again
func (s *Service) abandon(ctx context.Context, sess Session, p models.Principal) {
	sess.EndSession()
	if err := s.store.Delete(ctx, models.CollectionSessions, p.ID); err != nil && !errors.Is(err, marketerrors.ErrNotFound) {
		utils.Error("accounts: principal left without profile", map[string]any{
			"principal_id": p.ID,
			"error":        err.Error(),
		})
	}
}

// profileRole reports which role already holds a profile for identifier, or ""
func (s *Service) profileRole(ctx context.Context, identifier string) (models.Role, error) {
	for _, role := range []models.Role{models.RoleProducer, models.RolePurchaser} {
		collection, _ := role.ProfileCollection()
		docs, err := s.store.GetAll(ctx, collection)
		if err != nil {
			return "", fmt.Errorf("accounts: check %s profiles: %w", role, err)
		}
		for _, d := range docs {
			if strings.EqualFold(strings.TrimSpace(d.StringField(identity.FieldIdentifier)), identifier) {
				return role, nil
			}
		}
	}
	return "", nil
}

// Login authenticates and resolves the principal's role
func (s *Service) Login(ctx context.Context, sess Session, identifier, credential string) (models.Resolution, error) {
	principal, err := sess.Authenticate(ctx, identifier, credential)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("accounts: login: %w", err)
	}
	return s.resolve(ctx, sess, principal)
}

// WhoAmI resolves the session's current principal
func (s *Service) WhoAmI(ctx context.Context, sess Session) (models.Resolution, error) {
	principal, ok := sess.Current()
	if !ok {
		return models.Resolution{}, fmt.Errorf("accounts: %w", marketerrors.ErrNotAuthenticated)
	}
	return s.resolve(ctx, sess, principal)
}

// Logout ends the session
func (s *Service) Logout(sess Session) {
	sess.EndSession()
}

func (s *Service) resolve(ctx context.Context, sess Session, p models.Principal) (models.Resolution, error) {
	res, err := identity.NewResolver(s.store, sess).ResolveRole(ctx, p)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("accounts: resolve %s: %w", p.ID, err)
	}
	return res, nil
}
