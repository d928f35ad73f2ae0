package crypto

import (
	"crypto/aes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/holiman/uint256"

	"shieldwallet/internal/domain"
)

const blockSize = aes.BlockSize

// Encrypt masks plaintext (at most one block, left-padded with zeros) with
// AES-128(key, r) for a fresh random block r. The scheme is only confidential
// as long as r is never reused under the same key.
func Encrypt(key domain.AESKey, plaintext []byte) (domain.EncryptedAmount, error) {
	return encrypt(rand.Reader, key, plaintext)
}

func encrypt(rnd io.Reader, key domain.AESKey, plaintext []byte) (domain.EncryptedAmount, error) {
	var out domain.EncryptedAmount
	if len(plaintext) > blockSize {
		return out, fmt.Errorf("plaintext is %d bytes, at most %d allowed", len(plaintext), blockSize)
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return out, err
	}
	if _, err := io.ReadFull(rnd, out.Randomness[:]); err != nil {
		return out, fmt.Errorf("drawing randomness: %w", err)
	}

	var mask, padded [blockSize]byte
	block.Encrypt(mask[:], out.Randomness[:])
	copy(padded[blockSize-len(plaintext):], plaintext)
	for i := range padded {
		out.Ciphertext[i] = mask[i] ^ padded[i]
	}
	Wipe(mask[:], padded[:])
	return out, nil
}

// Decrypt recovers the 16-byte padded plaintext of enc.
func Decrypt(key domain.AESKey, enc domain.EncryptedAmount) ([blockSize]byte, error) {
	var out [blockSize]byte
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return out, err
	}
	var mask [blockSize]byte
	block.Encrypt(mask[:], enc.Randomness[:])
	for i := range out {
		out[i] = mask[i] ^ enc.Ciphertext[i]
	}
	Wipe(mask[:])
	return out, nil
}

// EncryptUint encrypts amount as an 8-byte big-endian integer.
func EncryptUint(key domain.AESKey, amount uint64) (domain.EncryptedAmount, error) {
	var pt [8]byte
	binary.BigEndian.PutUint64(pt[:], amount)
	return Encrypt(key, pt[:])
}

// DecryptUint decrypts the packed ciphertext||randomness integer and returns
// the plaintext as an unsigned integer. Amounts are 64-bit, so a non-zero
// upper half means the key does not match and yields domain.ErrDecryption.
func DecryptUint(key domain.AESKey, packed *uint256.Int) (*uint256.Int, error) {
	pt, err := Decrypt(key, domain.EncryptedAmountFromInt(packed))
	if err != nil {
		return nil, err
	}
	return uintFromBlock(pt)
}

// DecryptUintBytes is DecryptUint for the raw 32-byte form returned by the proxy.
func DecryptUintBytes(key domain.AESKey, raw []byte) (*uint256.Int, error) {
	if len(raw) != 2*blockSize {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, want %d", domain.ErrDecryption, len(raw), 2*blockSize)
	}
	var b [2 * blockSize]byte
	copy(b[:], raw)
	pt, err := Decrypt(key, domain.EncryptedAmountFromBytes(b))
	if err != nil {
		return nil, err
	}
	return uintFromBlock(pt)
}

func uintFromBlock(pt [blockSize]byte) (*uint256.Int, error) {
	defer Wipe(pt[:])
	for _, b := range pt[:blockSize-8] {
		if b != 0 {
			return nil, fmt.Errorf("%w: plaintext exceeds 64 bits, key mismatch or corrupted output", domain.ErrDecryption)
		}
	}
	return new(uint256.Int).SetUint64(binary.BigEndian.Uint64(pt[blockSize-8:])), nil
}
