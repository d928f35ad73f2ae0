package crypto

import (
	"encoding/hex"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"shieldwallet/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a user key, safe to display.
//
// It hashes with Keccak-256 and truncates to 8 bytes (16 hex chars).
func Fingerprint(key domain.AESKey) string {
	sum := gethcrypto.Keccak256([]byte("shieldwallet-key-fingerprint"), key[:])
	return hex.EncodeToString(sum[:8])
}
