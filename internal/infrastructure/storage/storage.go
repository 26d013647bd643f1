// Package storage abstracts the key-value persistence used by the settings,
// instruction-history and session stores. Every value is stored as a single
// JSON document; writes replace the whole document, merging happens in the
// domain layer before the write.
package storage

import (
	"context"
	"encoding/json"

	"chapter-api/internal/domain/domainerrors"
)

// Adapter is the key-value contract the domain stores are written against.
// Get reports found=false for absent keys instead of an error.
type Adapter interface {
	Get(ctx context.Context, key string) (value json.RawMessage, found bool, err error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

func wrapErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &domainerrors.StorageError{Op: op, Key: key, Err: err}
}
