package session

import (
	"sync"
	"time"

	"harvest-market/internal/repository"
	"harvest-market/utils"
)

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithTTL expires sessions ttl after they are opened. Zero keeps them until Close.
func WithTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = ttl }
}

// WithRegistryClock replaces the wall clock used for expiry.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

type registryEntry struct {
	manager *Manager
	expires time.Time
}

func (e registryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Registry holds the live sessions of a host process, keyed by session id
type Registry struct {
	store  repository.DocumentStore
	policy Policy
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	sessions  map[string]registryEntry
	nextSweep time.Time
}

// NewRegistry creates an empty registry whose sessions share store and policy.
func NewRegistry(store repository.DocumentStore, policy Policy, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:    store,
		policy:   policy,
		now:      time.Now,
		sessions: make(map[string]registryEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open starts a new anonymous session. Expired sessions are swept at most
// once per TTL period.
func (r *Registry) Open() (string, *Manager) {
	id := utils.GenerateToken()
	m := NewManager(r.store, r.policy)
	now := r.now()

	entry := registryEntry{manager: m}
	if r.ttl > 0 {
		entry.expires = now.Add(r.ttl)
	}

	r.mu.Lock()
	var evicted []*Manager
	if r.ttl > 0 && !now.Before(r.nextSweep) {
		evicted = r.sweepLocked(now)
		r.nextSweep = now.Add(r.ttl)
	}
	r.sessions[id] = entry
	r.mu.Unlock()

	endAll(evicted)
	return id, m
}

// Get returns a live session. An expired session is ended and forgotten.
func (r *Registry) Get(id string) (*Manager, bool) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expired(r.now()) {
		return entry.manager, true
	}

	r.mu.Lock()
	if current, ok := r.sessions[id]; ok && current.manager == entry.manager {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	entry.manager.EndSession()
	return nil, false
}

// Close ends the session and forgets it.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		entry.manager.EndSession()
	}
}

// Sweep ends and forgets every expired session and reports how many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	evicted := r.sweepLocked(r.now())
	r.mu.Unlock()

	endAll(evicted)
	return len(evicted)
}

func (r *Registry) sweepLocked(now time.Time) []*Manager {
	var evicted []*Manager
	for id, entry := range r.sessions {
		if entry.expired(now) {
			delete(r.sessions, id)
			evicted = append(evicted, entry.manager)
		}
	}
	if len(evicted) > 0 {
		utils.Debug("session: expired sessions evicted", map[string]any{"count": len(evicted)})
	}
	return evicted
}

func endAll(managers []*Manager) {
	for _, m := range managers {
		m.EndSession()
	}
}

// Len reports the number of sessions held, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
