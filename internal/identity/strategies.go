package identity

import (
	"context"
	"strings"

	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"
)

const cacheStrategyName = "cache"

type cacheStrategy struct {
	cache Cache
}

func (cacheStrategy) Name() string { return cacheStrategyName }

func (s cacheStrategy) Resolve(_ context.Context, p models.Principal) (models.Resolution, bool, error) {
	res, ok := s.cache.Cached(p.ID)
	return res, ok, nil
}

// lookupStrategy queries one profile collection by uid
type lookupStrategy struct {
	store repository.DocumentStore
	role  models.Role
}

func (s lookupStrategy) Name() string { return "lookup_" + string(s.role) }

func (s lookupStrategy) Resolve(ctx context.Context, p models.Principal) (models.Resolution, bool, error) {
	collection, _ := s.role.ProfileCollection()
	docs, err := s.store.Query(ctx, collection, FieldUID, models.String(p.ID))
	if err != nil {
		return models.Resolution{}, false, err
	}
	if len(docs) == 0 {
		return models.Resolution{}, false, nil
	}
	return models.Resolution{Role: s.role, Profile: docs[0]}, true, nil
}

// scanStrategy reads both profile collections in full and matches on uid first,
// then on the identifier field
type scanStrategy struct {
	store repository.DocumentStore
}

func (scanStrategy) Name() string { return "scan" }

// scan order is the role precedence
var scanRoles = []models.Role{models.RoleProducer, models.RolePurchaser}

func (s scanStrategy) Resolve(ctx context.Context, p models.Principal) (models.Resolution, bool, error) {
	type candidates struct {
		byUID, byIdentifier []models.Resolution
	}
	var found candidates

	for _, role := range scanRoles {
		collection, _ := role.ProfileCollection()
		docs, err := s.store.GetAll(ctx, collection)
		if err != nil {
			return models.Resolution{}, false, err
		}
		for _, doc := range docs {
			switch {
			case p.ID != "" && doc.StringField(FieldUID) == p.ID:
				found.byUID = append(found.byUID, models.Resolution{Role: role, Profile: doc})
			case p.Identifier != "" && sameIdentifier(doc.StringField(FieldIdentifier), p.Identifier):
				found.byIdentifier = append(found.byIdentifier, models.Resolution{Role: role, Profile: doc})
			}
		}
	}

	for _, group := range [][]models.Resolution{found.byUID, found.byIdentifier} {
		if len(group) == 0 {
			continue
		}
		if conflicting(group) {
			utils.Warn("identity: principal has profiles under both roles", map[string]any{
				"principal_id": p.ID,
				"chosen_role":  group[0].Role,
			})
		}
		return group[0], true, nil
	}
	return models.Resolution{}, false, nil
}

func sameIdentifier(stored, identifier string) bool {
	return stored != "" && normalize(stored) == normalize(identifier)
}

func conflicting(group []models.Resolution) bool {
	for _, r := range group[1:] {
		if r.Role != group[0].Role {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
