package types

import (
	"crypto/rsa"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// AESKeySize is the size of a user key (AES-128).
const AESKeySize = 16

// AESKey is the user key reconstructed during onboarding. It decrypts balance
// outputs from the MPC proxy and encrypts transfer amounts.
type AESKey [AESKeySize]byte

// Slice returns the key as a []byte.
func (k AESKey) Slice() []byte { return k[:] }

// Hex returns the key as 32 lower-case hex characters, without prefix.
func (k AESKey) Hex() string { return hex.EncodeToString(k[:]) }

// ParseAESKey decodes a 32 hex character key, with or without 0x prefix.
func ParseAESKey(s string) (AESKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return AESKey{}, fmt.Errorf("invalid AES key: %w", err)
	}
	if len(raw) != AESKeySize {
		return AESKey{}, fmt.Errorf("invalid AES key: want %d bytes, got %d", AESKeySize, len(raw))
	}
	var k AESKey
	copy(k[:], raw)
	return k, nil
}

// KeyPair is the ephemeral RSA key pair of one onboarding attempt. It is never
// persisted.
type KeyPair struct {
	PublicKey  []byte // DER-encoded SubjectPublicKeyInfo
	PrivateKey *rsa.PrivateKey
}

// UserKeyRecord is the durable secret that makes one address's balance visible.
type UserKeyRecord struct {
	Address   Address   `json:"address"`
	Key       AESKey    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
