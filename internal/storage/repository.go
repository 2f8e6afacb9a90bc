// Package storage implements the device-local persistent key-value store:
// a low-level repository over SQLite and a typed service exposing the auth
// keys (token, email, user record) and the preference blob.
package storage

import (
	"context"
	"fmt"
)

// Repository is the raw key-value contract. Get returns (nil, nil) when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Error describes a failed storage operation. Callers can match it with
// errors.As to distinguish storage faults from transport failures.
type Error struct {
	Op  string // "get", "set", "delete", "list", "clear"
	Key string // empty for whole-store operations
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
