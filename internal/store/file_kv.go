package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"nexus/internal/domain"
)

// FileKV stores a string map as one JSON file. With a passphrase the whole
// map is sealed before it touches disk.
type FileKV struct {
	path       string
	passphrase string
	kdf        kdfParams
	mu         sync.Mutex
}

// FileOption customises a FileKV.
type FileOption func(*FileKV)

// WithPassphrase seals the file with a key derived from passphrase.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileKV) { s.passphrase = passphrase }
}

// withKDF overrides the scrypt cost; tests use it to stay fast.
func withKDF(kdf kdfParams) FileOption {
	return func(s *FileKV) { s.kdf = kdf }
}

// NewFileKV returns a FileKV persisting to path.
func NewFileKV(path string, opts ...FileOption) *FileKV {
	s := &FileKV{path: path, kdf: defaultKDF()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key.
func (s *FileKV) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

// Set stores value under key.
func (s *FileKV) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = string(value)
	return s.save(m)
}

// Delete removes keys. The file is removed once the map is empty.
func (s *FileKV) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		return removeFile(s.path)
	}
	return s.save(m)
}

func (s *FileKV) load() (map[string]string, error) {
	m := map[string]string{}
	b, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return m, nil
	}
	if s.passphrase != "" {
		if b, err = open(s.passphrase, b); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileKV) save(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		if b, err = seal(s.passphrase, b, s.kdf); err != nil {
			return err
		}
	}
	return writeFile(s.path, b, 0o600)
}

// Compile-time assertion that FileKV implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileKV)(nil)
