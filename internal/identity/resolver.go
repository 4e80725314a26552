// Package identity classifies a principal as producer or purchaser.
//
// The role is not stored on the principal; it is inferred from which profile
// collection holds a record for it. Resolution walks an ordered list of
// strategies and stops at the first hit:
//
//  1. the session's cached resolution
//  2. producers where uid == principal id
//  3. purchasers where uid == principal id
//  4. a full scan of both collections by uid, then by identifier
//
// Producer records take precedence over purchaser records at every step.
// When nothing matches the role is RoleUndetermined, which is a result, not an error.
package identity

import (
	"context"
	"fmt"
	"time"

	"harvest-market/internal/metrics"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"
)

// Profile field names consulted during resolution
const (
	FieldUID        = "uid"
	FieldIdentifier = "email"
)

// Cache is the per-session resolution cache
type Cache interface {
	Cached(principalID string) (models.Resolution, bool)
	Remember(res models.Resolution)
}

// Strategy is one step of the resolution chain
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, p models.Principal) (models.Resolution, bool, error)
}

// Resolver runs strategies in order
type Resolver struct {
	strategies []Strategy
	cache      Cache
}

// NewResolver builds the standard chain. cache may be nil, which disables steps
// that read or write the session cache.
func NewResolver(store repository.DocumentStore, cache Cache) *Resolver {
	strategies := make([]Strategy, 0, 4)
	if cache != nil {
		strategies = append(strategies, cacheStrategy{cache: cache})
	}
	strategies = append(strategies,
		lookupStrategy{store: store, role: models.RoleProducer},
		lookupStrategy{store: store, role: models.RolePurchaser},
		scanStrategy{store: store},
	)
	return NewResolverWith(cache, strategies...)
}

// NewResolverWith builds a resolver over an explicit chain.
func NewResolverWith(cache Cache, strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, cache: cache}
}

// ResolveRole classifies p. Only storage failures are returned as errors.
func (r *Resolver) ResolveRole(ctx context.Context, p models.Principal) (models.Resolution, error) {
	start := time.Now()

	for _, s := range r.strategies {
		res, ok, err := s.Resolve(ctx, p)
		if err != nil {
			metrics.ObserveResolution(s.Name(), "error", time.Since(start))
			return models.Resolution{}, fmt.Errorf("identity: %s: %w", s.Name(), err)
		}
		if !ok {
			continue
		}

		res.PrincipalID = p.ID
		if r.cache != nil && s.Name() != cacheStrategyName {
			r.cache.Remember(res)
		}
		metrics.ObserveResolution(s.Name(), string(res.Role), time.Since(start))
		utils.Debug("identity: role resolved", map[string]any{
			"principal_id": p.ID,
			"role":         res.Role,
			"strategy":     s.Name(),
		})
		return res, nil
	}

	metrics.ObserveResolution("none", string(models.RoleUndetermined), time.Since(start))
	utils.Info("identity: role undetermined", map[string]any{"principal_id": p.ID})
	return models.Resolution{PrincipalID: p.ID, Role: models.RoleUndetermined}, nil
}
