package repository

import (
	"context"
	"fmt"

	"harvest-market/internal/models"
)

// Query returns the documents whose field is structurally equal to value.
// A document lacking the field never matches.
func (s *Store) Query(ctx context.Context, collection, field string, value models.Value) ([]models.Document, error) {
	docs, err := s.load(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("query %s where %s: %w", collection, field, err)
	}
	return filter(docs, field, value), nil
}

func filter(docs []models.Document, field string, value models.Value) []models.Document {
	out := make([]models.Document, 0)
	for _, doc := range docs {
		got, ok := doc.Get(field)
		if ok && got.Equal(value) {
			out = append(out, doc)
		}
	}
	return out
}
