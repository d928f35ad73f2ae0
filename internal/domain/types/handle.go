package types

import (
	"encoding/hex"

	"github.com/holiman/uint256"
)

// BalanceHandle is the opaque uint256 a private token returns from balanceOf.
// It references MPC-side state and is never a plaintext amount.
type BalanceHandle uint256.Int

// HandleFromBytes interprets b as a big-endian handle. Inputs longer than 32
// bytes keep the low-order 32.
func HandleFromBytes(b []byte) BalanceHandle {
	var u uint256.Int
	u.SetBytes(b)
	return BalanceHandle(u)
}

// HandleFromInt copies v into a handle.
func HandleFromInt(v *uint256.Int) BalanceHandle {
	return BalanceHandle(*v)
}

// Int returns a copy of the handle as a uint256.
func (h BalanceHandle) Int() *uint256.Int {
	u := uint256.Int(h)
	return &u
}

// Bytes32 renders the handle as 32 bytes, big-endian.
func (h BalanceHandle) Bytes32() [32]byte {
	u := uint256.Int(h)
	return u.Bytes32()
}

// IsZero reports whether the handle is the uninitialised zero value.
func (h BalanceHandle) IsZero() bool {
	u := uint256.Int(h)
	return u.IsZero()
}

// Hex returns the 0x-prefixed, zero-padded 64 hex character form.
func (h BalanceHandle) Hex() string {
	b := h.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

// String implements fmt.Stringer.
func (h BalanceHandle) String() string { return h.Hex() }
