package interfaces

import domaintypes "shieldwallet/internal/domain/types"

// KeyStore persists one AES key per wallet address. Records are scoped by
// address so switching wallets never exposes or overwrites another key.
type KeyStore interface {
	// Get returns the key for addr. ok is false when no record exists, which is
	// distinct from a stored all-zero key.
	Get(addr domaintypes.Address) (key domaintypes.AESKey, ok bool, err error)
	// Put replaces the whole record for addr.
	Put(addr domaintypes.Address, key domaintypes.AESKey) error
	// Clear removes the record for addr. Clearing an absent record is not an error.
	Clear(addr domaintypes.Address) error
}
