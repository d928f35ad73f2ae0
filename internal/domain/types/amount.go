package types

import (
	"github.com/holiman/uint256"
)

// BlockSize is the size of each half of an encrypted amount.
const BlockSize = 16

// EncryptedAmount is one plaintext integer encrypted under a user key.
// On the wire it travels as the uint256 ciphertext||randomness.
type EncryptedAmount struct {
	Ciphertext [BlockSize]byte
	Randomness [BlockSize]byte
}

// EncryptedAmountFromBytes splits a 32-byte ciphertext||randomness value.
func EncryptedAmountFromBytes(b [32]byte) EncryptedAmount {
	var e EncryptedAmount
	copy(e.Ciphertext[:], b[:BlockSize])
	copy(e.Randomness[:], b[BlockSize:])
	return e
}

// EncryptedAmountFromInt splits the packed integer form.
func EncryptedAmountFromInt(v *uint256.Int) EncryptedAmount {
	return EncryptedAmountFromBytes(v.Bytes32())
}

// Bytes returns ciphertext||randomness.
func (e EncryptedAmount) Bytes() [32]byte {
	var out [32]byte
	copy(out[:BlockSize], e.Ciphertext[:])
	copy(out[BlockSize:], e.Randomness[:])
	return out
}

// Int packs ciphertext||randomness big-endian into one integer, the
// on-chain-visible encrypted amount.
func (e EncryptedAmount) Int() *uint256.Int {
	b := e.Bytes()
	return new(uint256.Int).SetBytes(b[:])
}

// TransferMessageLength is the size of a packed (address, address, uint256).
const TransferMessageLength = 2*AddressLength + 32

// TransferMessage is what a sender signs before a private transfer.
type TransferMessage struct {
	Sender    Address
	Contract  Address
	Encrypted *uint256.Int
}

// PreparedTransfer is a signed transfer ready for submission.
type PreparedTransfer struct {
	Message   TransferMessage
	Amount    EncryptedAmount
	Signature []byte
}
