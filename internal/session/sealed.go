package session

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/swasthaai/swastha-cli/internal/errors"
)

// SealedStore is a BackingStore that encrypts the session file at rest with
// XChaCha20-Poly1305. Bearer credentials for a healthcare account should not
// sit on disk in plaintext; the key lives in a separate 0600 file so leaking
// either file alone reveals nothing.
type SealedStore struct {
	mu   sync.Mutex
	path string
	key  []byte
}

// NewSealedStore creates a SealedStore writing to path, sealed with the key
// at keyPath. A missing key file is created with fresh random material.
func NewSealedStore(path, keyPath string) (*SealedStore, error) {
	key, err := loadOrCreateSealKey(keyPath)
	if err != nil {
		return nil, err
	}
	return &SealedStore{path: path, key: key}, nil
}

func loadOrCreateSealKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, errors.New(errors.ErrCodeSessionSealOpen, "seal key file has wrong size").
				WithSuggestion("Delete the key file to generate a new one; the stored session will be discarded")
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read seal key", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionSealOpen, "failed to generate seal key", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create state directory", err)
	}
	if err := os.WriteFile(keyPath, key, 0o600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write seal key", err)
	}
	return key, nil
}

// Get implements BackingStore.
func (s *SealedStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements BackingStore.
func (s *SealedStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Delete implements BackingStore.
func (s *SealedStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to remove sealed session file", err)
		}
		return nil
	}
	return s.save(values)
}

func (s *SealedStore) load() (map[string]string, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrap(errors.ErrCodeSessionStoreRead, "failed to read sealed session file", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionSealOpen, "failed to initialize cipher", err)
	}

	if len(blob) < aead.NonceSize() {
		return nil, errors.New(errors.ErrCodeSessionSealOpen, "sealed session file is truncated")
	}
	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionSealOpen, "failed to unseal session file", err).
			WithSuggestion("The seal key may have been rotated; log in again")
	}

	values := make(map[string]string)
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionStoreRead, "sealed session payload is corrupt", err)
	}
	return values, nil
}

func (s *SealedStore) save(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to encode session payload", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionSealOpen, "failed to initialize cipher", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to generate nonce", err)
	}
	blob := append(nonce, aead.Seal(nil, nonce, plaintext, nil)...)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to create session directory", err)
	}
	if err := os.WriteFile(s.path, blob, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreWrite, "failed to write sealed session file", err)
	}
	return nil
}
