package storage

import (
	"context"
	"io"
)

//go:generate mockery --name Storage --dir . --output ../../mocks/storage --outpkg mocks --filename Storage.go
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// RemoveMany deletes the objects identified by keys. Any per-key
	// failure fails the whole call.
	RemoveMany(ctx context.Context, keys []string) error
	// PublicURL constructs the browser-accessible URL for a key. Pure
	// function of the key given the configured public base URL.
	PublicURL(key string) string
	// KeyFromURL is the inverse of PublicURL. Returns false when the
	// URL does not carry the known public prefix.
	KeyFromURL(url string) (string, bool)
}
