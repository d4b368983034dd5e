package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// StoredObject is a blob held by MemoryStore.
type StoredObject struct {
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// MemoryStore is an in-memory ObjectStore for tests and local development.
// It is safe for concurrent use.
type MemoryStore struct {
	baseURL string
	mu      sync.RWMutex
	objects map[string]StoredObject

	// FailPut and FailDelete, when set, are returned by Put and Delete.
	FailPut    error
	FailDelete error
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: baseURL,
		objects: make(map[string]StoredObject),
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string, metadata map[string]string) (string, error) {
	if m.FailPut != nil {
		return "", m.FailPut
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = StoredObject{Data: data, ContentType: contentType, Metadata: meta}
	return PublicURL(m.baseURL, key), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	if m.FailDelete != nil {
		return m.FailDelete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) PresignGet(_ context.Context, key, filename string, expires time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	q := url.Values{}
	q.Set("expires", fmt.Sprintf("%d", int(expires.Seconds())))
	if filename != "" {
		q.Set("filename", filename)
	}
	return PublicURL(m.baseURL, key) + "?" + q.Encode(), nil
}

// Get returns the object at key.
func (m *MemoryStore) Get(key string) (StoredObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ ObjectStore = (*MemoryStore)(nil)
