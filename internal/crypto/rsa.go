package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"

	"shieldwallet/internal/domain"
)

const (
	// RSAKeyBits is the modulus size of the onboarding key pair.
	RSAKeyBits = 2048
	// RSACiphertextSize is the size of one RSA-2048 ciphertext. The onboarding
	// blob is split at this fixed boundary, never at len/2.
	RSACiphertextSize = RSAKeyBits / 8
)

// GenerateRSAKeyPair creates the ephemeral onboarding key pair. The public
// half is DER-encoded SubjectPublicKeyInfo.
func GenerateRSAKeyPair() (domain.KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, RSAKeyBits)
	if err != nil {
		return domain.KeyPair{}, err
	}
	pub, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// ParseRSAPublicKey decodes a DER SubjectPublicKeyInfo holding an RSA key.
func ParseRSAPublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, err
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, want RSA", key)
	}
	return pub, nil
}

// SplitKeyShares splits the onboarding blob into share0 = blob[:256] and
// share1 = blob[256:]. Blobs shorter than one RSA ciphertext are rejected.
func SplitKeyShares(blob []byte) (share0, share1 []byte, err error) {
	if len(blob) < RSACiphertextSize {
		return nil, nil, fmt.Errorf("%w: got %d bytes, want at least %d",
			domain.ErrShortCiphertext, len(blob), RSACiphertextSize)
	}
	return blob[:RSACiphertextSize], blob[RSACiphertextSize:], nil
}

// Reconstructor turns the two hex-encoded key shares into the user key.
type Reconstructor func(priv *rsa.PrivateKey, share0Hex, share1Hex string) (domain.AESKey, error)

// ReconstructUserKey decrypts both shares with RSA-OAEP (SHA-256) and XORs
// them into the AES key.
func ReconstructUserKey(priv *rsa.PrivateKey, share0Hex, share1Hex string) (domain.AESKey, error) {
	var key domain.AESKey
	if priv == nil {
		return key, errors.New("reconstruct user key: nil private key")
	}
	k0, err := decryptShare(priv, share0Hex)
	if err != nil {
		return key, fmt.Errorf("key share 0: %w", err)
	}
	defer Wipe(k0)
	k1, err := decryptShare(priv, share1Hex)
	if err != nil {
		return key, fmt.Errorf("key share 1: %w", err)
	}
	defer Wipe(k1)

	if len(k0) != domain.AESKeySize || len(k1) != domain.AESKeySize {
		return key, fmt.Errorf("key shares are %d and %d bytes, want %d", len(k0), len(k1), domain.AESKeySize)
	}
	for i := range key {
		key[i] = k0[i] ^ k1[i]
	}
	return key, nil
}

func decryptShare(priv *rsa.PrivateKey, shareHex string) ([]byte, error) {
	ct, err := hex.DecodeString(shareHex)
	if err != nil {
		return nil, err
	}
	return rsa.DecryptOAEP(sha256.New(), nil, priv, ct, nil)
}

// EncryptKeyShares is the proxy side of ReconstructUserKey: it splits key into
// two random XOR shares and encrypts each to pub, returning share0||share1.
func EncryptKeyShares(pub *rsa.PublicKey, key domain.AESKey) ([]byte, error) {
	var s0, s1 [domain.AESKeySize]byte
	if _, err := rand.Read(s0[:]); err != nil {
		return nil, err
	}
	for i := range s1 {
		s1[i] = key[i] ^ s0[i]
	}
	defer Wipe(s0[:], s1[:])

	c0, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, s0[:], nil)
	if err != nil {
		return nil, err
	}
	c1, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, s1[:], nil)
	if err != nil {
		return nil, err
	}
	return append(c0, c1...), nil
}
