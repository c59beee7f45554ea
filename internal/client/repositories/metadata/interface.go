// Package metadata is the client's persistent key/value store. It plays the
// role browser local storage plays for a web client: small named blobs that
// survive restarts until they are explicitly removed.
package metadata

import "context"

// Repository stores named blobs. Get reports a missing key as
// common.ErrNotFound.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
