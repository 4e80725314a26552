// Package medium holds the textual key/value backends a record store persists
// collections into. Each key holds one serialized collection.
package medium

import (
	"context"
	"fmt"
)

// Medium is a textual key/value store. Get on an absent key reports ok=false
// without an error; Set replaces the whole value.
type Medium interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a collection: "<namespace>-<collection>".
func Key(namespace, collection string) string {
	return fmt.Sprintf("%s-%s", namespace, collection)
}
