package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressLength is the size of an account or contract address in bytes.
const AddressLength = common.AddressLength

// Address identifies a wallet or a token contract on chain. Hex returns the
// EIP-55 checksum form.
type Address = common.Address

// TxHash is a transaction hash.
type TxHash = common.Hash

// BytesToAddress returns the address made of the last 20 bytes of b.
func BytesToAddress(b []byte) Address { return common.BytesToAddress(b) }

// ParseAddress decodes a 0x-prefixed 40 hex character address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Address{}, fmt.Errorf("invalid address %q: missing 0x prefix", s)
	}
	if !common.IsHexAddress(s) {
		return Address{}, fmt.Errorf("invalid address %q: want %d hex bytes", s, AddressLength)
	}
	return common.HexToAddress(s), nil
}

// AddressKey returns the lower-case 0x hex form, used as the storage scope.
func AddressKey(a Address) string { return strings.ToLower(a.Hex()) }

// IsZeroAddress reports whether a is the zero address.
func IsZeroAddress(a Address) bool { return a == Address{} }

// Receipt is the part of a transaction receipt the client cares about.
type Receipt struct {
	TxHash      TxHash
	BlockNumber uint64
	GasUsed     uint64
	Status      uint64 // 1 success, 0 reverted
}

// Succeeded reports whether the transaction executed without reverting.
func (r Receipt) Succeeded() bool { return r.Status == 1 }
