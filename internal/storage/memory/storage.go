package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"gallery-service/internal/logger"
)

// Storage keeps objects in a map. Test double for the minio client.
type Storage struct {
	log          *logger.Logger
	publicPrefix string

	mu        sync.RWMutex
	objects   map[string][]byte
	uploadErr error
	removeErr error
}

func NewStorage(publicBaseURL string, log *logger.Logger) *Storage {
	return &Storage{
		log:          log,
		publicPrefix: strings.TrimSuffix(publicBaseURL, "/") + "/",
		objects:      make(map[string][]byte),
	}
}

func (s *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.uploadErr != nil {
		return s.uploadErr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.log.Debug("Stored object", slog.String("key", key), slog.Int("size", len(data)))
	return nil
}

func (s *Storage) RemoveMany(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeErr != nil {
		return s.removeErr
	}

	for _, key := range keys {
		if _, exists := s.objects[key]; !exists {
			return fmt.Errorf("object %q not found", key)
		}
	}
	for _, key := range keys {
		delete(s.objects, key)
	}
	return nil
}

func (s *Storage) PublicURL(key string) string {
	return s.publicPrefix + key
}

func (s *Storage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.publicPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, s.publicPrefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// SimulateUploadError makes every subsequent Upload fail with err.
func (s *Storage) SimulateUploadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadErr = err
}

// SimulateRemoveError makes every subsequent RemoveMany fail with err.
func (s *Storage) SimulateRemoveError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeErr = err
}

// Exists reports whether an object is stored under key.
func (s *Storage) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.objects[key]
	return exists
}

// Len reports the number of stored objects.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
