package core

import (
	"context"
	"time"

	"a3mm/internal/domain"
	"a3mm/internal/logging"

	"github.com/rs/zerolog"
)

// DependencyLookup returns the dependencies a mod lists, in listing order.
// An empty result means the mod has none.
type DependencyLookup interface {
	FetchDependencies(ctx context.Context, id string) ([]domain.Dependency, error)
}

// DependencyStore caches lookup results
type DependencyStore interface {
	GetDependencies(modID string, notBefore time.Time) ([]domain.Dependency, bool, error)
	SaveDependencies(modID string, deps []domain.Dependency, fetchedAt time.Time) error
}

// ClassifyDependencies pairs each dependency with its state in mods
func ClassifyDependencies(deps []domain.Dependency, mods []domain.Mod) []domain.DependencyStatus {
	byID := make(map[string]domain.Mod, len(mods))
	for _, m := range mods {
		byID[m.Identifier] = m
	}

	statuses := make([]domain.DependencyStatus, 0, len(deps))
	for _, dep := range deps {
		state := domain.DependencyMissing
		if m, ok := byID[dep.ID]; ok {
			state = domain.DependencyDisabled
			if m.Enabled {
				state = domain.DependencyEnabled
			}
		}
		statuses = append(statuses, domain.DependencyStatus{Dependency: dep, State: state})
	}
	return statuses
}

// CachedLookup serves lookups from a store while they are younger than ttl.
// Store failures are logged and fall through to the wrapped lookup.
type CachedLookup struct {
	next   DependencyLookup
	store  DependencyStore
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewCachedLookup wraps next with store. A ttl of zero disables caching.
func NewCachedLookup(next DependencyLookup, store DependencyStore, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		next:   next,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logging.GetLogger("deps-cache"),
	}
}

// FetchDependencies implements DependencyLookup
func (c *CachedLookup) FetchDependencies(ctx context.Context, id string) ([]domain.Dependency, error) {
	if c.ttl <= 0 || c.store == nil {
		return c.next.FetchDependencies(ctx, id)
	}

	now := c.now()
	deps, ok, err := c.store.GetDependencies(id, now.Add(-c.ttl))
	if err != nil {
		c.logger.Warn().Err(err).Str("mod", id).Msg("Reading dependency cache failed")
	} else if ok {
		c.logger.Debug().Str("mod", id).Msg("Dependency cache hit")
		return deps, nil
	}

	deps, err = c.next.FetchDependencies(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.store.SaveDependencies(id, deps, now); err != nil {
		c.logger.Warn().Err(err).Str("mod", id).Msg("Writing dependency cache failed")
	}
	return deps, nil
}
