// Package storage keeps the binary payloads of uploaded images. Only
// opaque keys cross into the content store; the bytes live here.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// BlobStore stores opaque binary resources under generated keys.
type BlobStore interface {
	// Save writes the blob and returns its key. ext is the original file
	// extension, kept so served files get a sensible content type.
	Save(r io.Reader, ext string) (string, error)
	Open(key string) (io.ReadCloser, error)
	Remove(key string) error
}

// DiskStore keeps blobs as files under a base directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %v", err)
	}
	return &DiskStore{dir: dir}, nil
}

func newKey(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "bin"
	}
	return uuid.New().String() + "." + ext
}

// Save writes the blob to disk under a fresh UUID key.
func (s *DiskStore) Save(r io.Reader, ext string) (string, error) {
	key := newKey(ext)
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create blob: %v", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write blob: %v", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close blob: %v", err)
	}
	return key, nil
}

// Open returns a reader for the stored blob.
func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	// Keys are generated UUIDs; reject anything path-like.
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("invalid blob key %q", key)
	}
	return os.Open(filepath.Join(s.dir, key))
}

// Remove deletes the stored blob.
func (s *DiskStore) Remove(key string) error {
	if key != filepath.Base(key) {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return os.Remove(filepath.Join(s.dir, key))
}

// MemStore is an in-memory BlobStore for tests.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemStore creates an empty in-memory blob store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (s *MemStore) Save(r io.Reader, ext string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := newKey(ext)
	s.mu.Lock()
	s.blobs[key] = data
	s.mu.Unlock()
	return key, nil
}

func (s *MemStore) Open(key string) (io.ReadCloser, error) {
	s.mu.Lock()
	data, ok := s.blobs[key]
	s.mu.Unlock()
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

// Len reports how many blobs are stored, for test assertions.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
