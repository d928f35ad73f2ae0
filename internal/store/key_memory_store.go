package store

import (
	"sync"

	"shieldwallet/internal/domain"
)

// KeyMemoryStore is an in-process KeyStore.
type KeyMemoryStore struct {
	mu   sync.RWMutex
	keys map[domain.Address]domain.AESKey
}

func NewKeyMemoryStore() *KeyMemoryStore {
	return &KeyMemoryStore{keys: make(map[domain.Address]domain.AESKey)}
}

func (s *KeyMemoryStore) Get(addr domain.Address) (domain.AESKey, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.keys[addr]
	return k, ok, nil
}

func (s *KeyMemoryStore) Put(addr domain.Address, key domain.AESKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[addr] = key
	return nil
}

func (s *KeyMemoryStore) Clear(addr domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, addr)
	return nil
}

var _ domain.KeyStore = (*KeyMemoryStore)(nil)
