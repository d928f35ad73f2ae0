package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
)

// KeyFileName is the sealed key map inside the home directory.
const KeyFileName = "keys.json.enc"

type keyEntry struct {
	Key       string    `json:"aes_key"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyFileStore keeps every address's AES key in one passphrase-sealed file.
type KeyFileStore struct {
	path       string
	passphrase string
	kdf        scryptParams
	mu         sync.Mutex
}

// NewKeyFileStore stores keys under dir, sealed with passphrase.
func NewKeyFileStore(dir, passphrase string) *KeyFileStore {
	return &KeyFileStore{
		path:       filepath.Join(dir, KeyFileName),
		passphrase: passphrase,
		kdf:        defaultScryptParams(),
	}
}

// Get returns the key stored for addr.
func (s *KeyFileStore) Get(addr domain.Address) (domain.AESKey, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.AESKey{}, false, err
	}
	e, ok := m[domain.AddressKey(addr)]
	if !ok {
		return domain.AESKey{}, false, nil
	}
	key, err := domain.ParseAESKey(e.Key)
	if err != nil {
		return domain.AESKey{}, false, fmt.Errorf("key for %s: %w", domain.AddressKey(addr), err)
	}
	return key, true, nil
}

// Put replaces the key stored for addr.
func (s *KeyFileStore) Put(addr domain.Address, key domain.AESKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[domain.AddressKey(addr)] = keyEntry{Key: key.Hex(), UpdatedAt: time.Now().UTC()}
	return s.save(m)
}

// Clear removes the key stored for addr, if any.
func (s *KeyFileStore) Clear(addr domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[domain.AddressKey(addr)]; !ok {
		return nil
	}
	delete(m, domain.AddressKey(addr))
	return s.save(m)
}

// Addresses lists the addresses that have a stored key.
func (s *KeyFileStore) Addresses() ([]domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0, len(m))
	for k := range m {
		a, err := domain.ParseAddress(k)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *KeyFileStore) load() (map[string]keyEntry, error) {
	m := make(map[string]keyEntry)
	b, err := readFile(s.path)
	if err != nil || b == nil {
		return m, err
	}
	raw, err := open(s.passphrase, b)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(raw)
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	return m, nil
}

func (s *KeyFileStore) save(m map[string]keyEntry) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)
	b, err := seal(s.passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.path, b, 0o600)
}

var _ domain.KeyStore = (*KeyFileStore)(nil)
