package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/store"
)

// SignatureLength is the size of an r||s||v signature.
const SignatureLength = 65

// LocalSigner signs with a private key held in process memory.
type LocalSigner struct {
	key  *secp256k1.PrivateKey
	addr domain.Address
}

// NewLocalSigner wraps key.
func NewLocalSigner(key *secp256k1.PrivateKey) *LocalSigner {
	return &LocalSigner{key: key, addr: PubkeyToAddress(key.PubKey())}
}

// GenerateLocalSigner creates a signer with a fresh random key.
func GenerateLocalSigner() (*LocalSigner, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewLocalSigner(key), nil
}

// ParsePrivateKeyHex builds a signer from a 32-byte hex private key.
func ParsePrivateKeyHex(s string) (*LocalSigner, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	defer crypto.Wipe(raw)
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key: want 32 bytes, got %d", len(raw))
	}
	key := secp256k1.PrivKeyFromBytes(raw)
	if key.Key.IsZero() {
		return nil, errors.New("private key: zero scalar")
	}
	return NewLocalSigner(key), nil
}

// LoadKeyFile opens the sealed private key at path with passphrase.
func LoadKeyFile(path, passphrase string) (*LocalSigner, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := store.OpenSecret(passphrase, b)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer crypto.Wipe(raw)
	return ParsePrivateKeyHex(string(raw))
}

// SaveKeyFile seals the signer's private key under passphrase and writes it
// with owner-only permissions.
func SaveKeyFile(path, passphrase string, s *LocalSigner) error {
	raw := s.key.Serialize()
	defer crypto.Wipe(raw)
	text := []byte(hex.EncodeToString(raw))
	defer crypto.Wipe(text)
	sealed, err := store.SealSecret(passphrase, text)
	if err != nil {
		return fmt.Errorf("seal key: %w", err)
	}
	return os.WriteFile(path, sealed, 0o600)
}

// Address returns the account address derived from the public key.
func (s *LocalSigner) Address() domain.Address { return s.addr }

// SignMessage signs the EIP-191 digest of msg.
func (s *LocalSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SignHash(s.key, accounts.TextHash(msg)), nil
}

// SignTx signs tx for chainID with the latest signer rules for that chain.
func (s *LocalSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := s.key.Serialize()
	defer crypto.Wipe(raw)
	key, err := gethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return signed, nil
}

// SignHash returns an r||s||v signature over hash with v in {27, 28}.
func SignHash(key *secp256k1.PrivateKey, hash []byte) []byte {
	compact := ecdsa.SignCompact(key, hash, false)
	// compact is [27+recid] || R || S
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig
}

// RecoverAddress returns the address that produced sig over the EIP-191
// digest of msg. v may be 0/1 or 27/28.
func RecoverAddress(msg, sig []byte) (domain.Address, error) {
	if len(sig) != SignatureLength {
		return domain.Address{}, fmt.Errorf("signature: want %d bytes, got %d", SignatureLength, len(sig))
	}
	v := sig[64]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return domain.Address{}, fmt.Errorf("signature: invalid recovery id %d", sig[64])
	}
	compact := make([]byte, SignatureLength)
	compact[0] = v
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, accounts.TextHash(msg))
	if err != nil {
		return domain.Address{}, fmt.Errorf("signature: %w", err)
	}
	return PubkeyToAddress(pub), nil
}

// PubkeyToAddress is the last 20 bytes of keccak256 of the uncompressed
// point without its 0x04 prefix.
func PubkeyToAddress(pub *secp256k1.PublicKey) domain.Address {
	return domain.BytesToAddress(gethcrypto.Keccak256(pub.SerializeUncompressed()[1:])[12:])
}

var _ domain.Signer = (*LocalSigner)(nil)
