// internal/app/store/kv/kv.go
//
// Package kv is a string key/value store. It stands in for the browser's
// local storage: whole values are read and written, last writer wins.
package kv

import "context"

// Store reads and writes whole string values by key.
type Store interface {
	// Get returns the value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
