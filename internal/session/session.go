// Package session manages principals and the current principal of one session.
//
// A Manager is an explicit session object: it holds at most one current
// principal, a cached role resolution for that principal, and an ordered list
// of observers notified on every change. Principal records themselves live in
// the record store's sessions collection and are shared by all managers.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"

	"golang.org/x/crypto/bcrypt"
)

// DefaultMinCredentialLength matches the marketplace's historical password rule
const DefaultMinCredentialLength = 6

const (
	fieldIdentifier     = "identifier"
	fieldCredentialHash = "credentialHash"
)

// Policy is the credential-strength policy supplied by the host
type Policy struct {
	MinCredentialLength int
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

func (p Policy) cost() int {
	if p.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return p.HashCost
}

// Listener receives the current principal, or nil once the session ends
type Listener func(p *models.Principal)

type subscriber struct {
	id int
	fn Listener
}

// Manager is one session: Anonymous until CreatePrincipal or Authenticate,
// Authenticated until EndSession.
type Manager struct {
	store  repository.DocumentStore
	policy Policy

	mu          sync.Mutex
	current     *models.Principal
	resolution  *models.Resolution
	subscribers []subscriber
	nextSubID   int
}

// NewManager creates an anonymous session backed by store.
func NewManager(store repository.DocumentStore, policy Policy) *Manager {
	if policy.MinCredentialLength <= 0 {
		policy.MinCredentialLength = DefaultMinCredentialLength
	}
	return &Manager{store: store, policy: policy}
}

// NormalizeIdentifier trims and lower-cases an identifier.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// CreatePrincipal registers a new principal and makes it current
func (m *Manager) CreatePrincipal(ctx context.Context, identifier, credential string) (models.Principal, error) {
	identifier = NormalizeIdentifier(identifier)
	if identifier == "" {
		return models.Principal{}, fmt.Errorf("session: %w - empty identifier", marketerrors.ErrInvalidIdentifier)
	}
	if len(credential) < m.policy.MinCredentialLength {
		return models.Principal{}, fmt.Errorf("session: %w - minimum length is %d", marketerrors.ErrWeakCredential, m.policy.MinCredentialLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), m.policy.cost())
	if err != nil {
		return models.Principal{}, fmt.Errorf("session: hash credential: %w", err)
	}

	id, err := m.store.InsertUnique(ctx, models.CollectionSessions, fieldIdentifier, models.String(identifier), models.Fields{
		fieldIdentifier:     models.String(identifier),
		fieldCredentialHash: models.String(string(hash)),
	})
	if errors.Is(err, marketerrors.ErrDuplicate) {
		return models.Principal{}, fmt.Errorf("session: %s: %w", identifier, marketerrors.ErrIdentifierTaken)
	}
	if err != nil {
		return models.Principal{}, fmt.Errorf("session: create principal: %w", err)
	}

	p := models.Principal{ID: id, Identifier: identifier}
	m.setCurrent(&p)

	utils.Info("session: principal created", map[string]any{"principal_id": id})
	return p, nil
}

// Authenticate checks a credential and makes the matching principal current.
// Unknown identifiers and wrong credentials both report ErrNotFound.
func (m *Manager) Authenticate(ctx context.Context, identifier, credential string) (models.Principal, error) {
	identifier = NormalizeIdentifier(identifier)

	docs, err := m.store.Query(ctx, models.CollectionSessions, fieldIdentifier, models.String(identifier))
	if err != nil {
		return models.Principal{}, fmt.Errorf("session: authenticate: %w", err)
	}
	if len(docs) == 0 {
		return models.Principal{}, fmt.Errorf("session: principal %s: %w", identifier, marketerrors.ErrNotFound)
	}

	doc := docs[0]
	if bcrypt.CompareHashAndPassword([]byte(doc.StringField(fieldCredentialHash)), []byte(credential)) != nil {
		utils.Warn("session: credential mismatch", map[string]any{"principal_id": doc.ID})
		return models.Principal{}, fmt.Errorf("session: principal %s: %w", identifier, marketerrors.ErrNotFound)
	}

	p := models.Principal{ID: doc.ID, Identifier: identifier}
	m.setCurrent(&p)
	return p, nil
}

// EndSession clears the current principal and its cached resolution
func (m *Manager) EndSession() {
	m.setCurrent(nil)
}

// Current returns the current principal, if any.
func (m *Manager) Current() (models.Principal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Principal{}, false
	}
	return *m.current, true
}

// Subscribe calls fn now with the current principal and again on every change
// until the returned function is called.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	m.nextSubID++
	id := m.nextSubID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	current := copyPrincipal(m.current)
	m.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { m.unsubscribe(id) })
	}
}

func (m *Manager) unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subscribers {
		if s.id == id {
			m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
			return
		}
	}
}

// Cached returns the remembered resolution for principalID.
func (m *Manager) Cached(principalID string) (models.Resolution, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolution == nil || m.resolution.PrincipalID != principalID {
		return models.Resolution{}, false
	}
	return *m.resolution, true
}

// Remember stores a resolution for the current principal. Resolutions for
// any other principal are ignored.
func (m *Manager) Remember(res models.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID != res.PrincipalID || res.Undetermined() {
		return
	}
	r := res
	r.Profile = res.Profile.Clone()
	m.resolution = &r
}

func (m *Manager) setCurrent(p *models.Principal) {
	m.mu.Lock()
	if p == nil && m.current == nil {
		m.mu.Unlock()
		return
	}
	if m.current == nil || p == nil || m.current.ID != p.ID {
		m.resolution = nil
	}
	m.current = copyPrincipal(p)
	subs := append([]subscriber(nil), m.subscribers...)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(copyPrincipal(p))
	}
}

func copyPrincipal(p *models.Principal) *models.Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
