package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/medium"
	"harvest-market/internal/models"
	"harvest-market/utils"
)

// DocumentStore defines the record store surface used by the marketplace protocols
type DocumentStore interface {
	Insert(ctx context.Context, collection string, fields models.Fields) (string, error)
	InsertUnique(ctx context.Context, collection, field string, value models.Value, fields models.Fields) (string, error)
	GetAll(ctx context.Context, collection string) ([]models.Document, error)
	GetByID(ctx context.Context, collection, id string) (models.Document, error)
	Update(ctx context.Context, collection, id string, patch models.Patch) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection, field string, value models.Value) ([]models.Document, error)
}

// SchemaFunc validates the full field set of a document before it is persisted
type SchemaFunc func(fields models.Fields) error

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock replaces the default UTC wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSchema registers a validator for one collection.
func WithSchema(collection string, fn SchemaFunc) Option {
	return func(s *Store) { s.schemas[collection] = fn }
}

// Store persists named collections of documents into a Medium. Every write
// re-serializes the whole collection under a per-collection lock; every read
// goes back to the medium.
type Store struct {
	medium    medium.Medium
	namespace string
	newID     func() string
	now       func() time.Time
	schemas   map[string]SchemaFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a store writing keys "<namespace>-<collection>" into m.
func NewStore(m medium.Medium, namespace string, opts ...Option) *Store {
	s := &Store{
		medium:    m,
		namespace: namespace,
		newID:     utils.GenerateID,
		now:       func() time.Time { return time.Now().UTC() },
		schemas:   make(map[string]SchemaFunc),
		locks:     make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) lock(collection string) func() {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Insert assigns a fresh id, stamps createdAt and persists the document
func (s *Store) Insert(ctx context.Context, collection string, fields models.Fields) (string, error) {
	unlock := s.lock(collection)
	defer unlock()

	docs, err := s.load(ctx, collection)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return s.appendDoc(ctx, collection, docs, fields)
}

// InsertUnique inserts only if no document already has field == value
func (s *Store) InsertUnique(ctx context.Context, collection, field string, value models.Value, fields models.Fields) (string, error) {
	unlock := s.lock(collection)
	defer unlock()

	docs, err := s.load(ctx, collection)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	if len(filter(docs, field, value)) > 0 {
		return "", fmt.Errorf("insert into %s: %s=%s: %w", collection, field, value, marketerrors.ErrDuplicate)
	}
	return s.appendDoc(ctx, collection, docs, fields)
}

func (s *Store) appendDoc(ctx context.Context, collection string, docs []models.Document, fields models.Fields) (string, error) {
	for name := range fields {
		if models.IsReserved(name) {
			return "", fmt.Errorf("insert into %s: field %q: %w", collection, name, marketerrors.ErrReservedField)
		}
	}
	if err := s.validate(collection, fields); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	doc := models.Document{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Fields:    fields.Clone(),
	}
	if doc.Fields == nil {
		doc.Fields = models.Fields{}
	}

	if err := s.save(ctx, collection, append(docs, doc)); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	utils.Debug("store: document inserted", map[string]any{"collection": collection, "id": doc.ID})
	return doc.ID, nil
}

// GetAll returns a snapshot of every document; an absent collection is empty
func (s *Store) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	docs, err := s.load(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("get all from %s: %w", collection, err)
	}
	return docs, nil
}

// GetByID returns one document or ErrNotFound
func (s *Store) GetByID(ctx context.Context, collection, id string) (models.Document, error) {
	docs, err := s.load(ctx, collection)
	if err != nil {
		return models.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if i := indexOf(docs, id); i >= 0 {
		return docs[i], nil
	}
	return models.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, marketerrors.ErrNotFound)
}

// Update merges patch into an existing document and stamps updatedAt
func (s *Store) Update(ctx context.Context, collection, id string, patch models.Patch) error {
	for name := range patch {
		if models.IsReserved(name) {
			return fmt.Errorf("update %s/%s: field %q: %w", collection, id, name, marketerrors.ErrReservedField)
		}
	}

	unlock := s.lock(collection)
	defer unlock()

	docs, err := s.load(ctx, collection)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	i := indexOf(docs, id)
	if i < 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, marketerrors.ErrNotFound)
	}

	merged := docs[i].Fields.Clone()
	if merged == nil {
		merged = models.Fields{}
	}
	patch.Apply(merged)
	if err := s.validate(collection, merged); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}

	docs[i].Fields = merged
	docs[i].UpdatedAt = s.now()

	if err := s.save(ctx, collection, docs); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes a document or reports ErrNotFound
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	unlock := s.lock(collection)
	defer unlock()

	docs, err := s.load(ctx, collection)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	i := indexOf(docs, id)
	if i < 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, marketerrors.ErrNotFound)
	}

	docs = append(docs[:i], docs[i+1:]...)
	if err := s.save(ctx, collection, docs); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) validate(collection string, fields models.Fields) error {
	fn, ok := s.schemas[collection]
	if !ok {
		return nil
	}
	if err := fn(fields); err != nil {
		if errors.Is(err, marketerrors.ErrSchemaViolation) {
			return err
		}
		return fmt.Errorf("%w: %w", marketerrors.ErrSchemaViolation, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, collection string) ([]models.Document, error) {
	key := medium.Key(s.namespace, collection)

	raw, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", marketerrors.ErrStorage, err)
	}
	if !ok || raw == "" {
		return []models.Document{}, nil
	}

	var docs []models.Document
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		utils.Error("store: collection unreadable", map[string]any{"key": key, "error": err.Error()})
		return nil, fmt.Errorf("%w: decode %s: %w", marketerrors.ErrStorage, key, err)
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func (s *Store) save(ctx context.Context, collection string, docs []models.Document) error {
	key := medium.Key(s.namespace, collection)

	b, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", marketerrors.ErrStorage, key, err)
	}
	if err := s.medium.Set(ctx, key, string(b)); err != nil {
		utils.Error("store: write failed", map[string]any{"key": key, "error": err.Error()})
		return fmt.Errorf("%w: %w", marketerrors.ErrStorage, err)
	}
	return nil
}

func indexOf(docs []models.Document, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}
