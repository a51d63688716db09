// Package session persists the client's identity between runs: the token,
// the user id decoded from it, and the denormalized profile snapshot. All
// keys are cleared together on logout.
package session

import "context"

// Storage keys. KeyUser holds the JSON-serialized profile snapshot.
const (
	KeyToken  = "token"
	KeyUserID = "userId"
	KeyUser   = "user"
)

// Repository is a durable key-value store for session state.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
