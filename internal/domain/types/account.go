package types

import "github.com/holiman/uint256"

// Default decimals of the two sides of a token pair.
const (
	DefaultPublicDecimals  uint8 = 18
	DefaultPrivateDecimals uint8 = 5
)

// TokenPair binds a public ERC-20 to its shielded counterpart.
type TokenPair struct {
	Name            string  `json:"name"`
	PublicAddress   Address `json:"public_address"`
	PrivateAddress  Address `json:"private_address"`
	PublicDecimals  uint8   `json:"public_decimals"`
	PrivateDecimals uint8   `json:"private_decimals"`
}

// Key identifies the pair for request tracking.
func (p TokenPair) Key() string {
	return AddressKey(p.PublicAddress) + "/" + AddressKey(p.PrivateAddress)
}

// BalanceOverview is the public and decrypted private balance of one owner.
type BalanceOverview struct {
	Owner   Address
	Pair    TokenPair
	Public  *uint256.Int
	Private *uint256.Int
}
