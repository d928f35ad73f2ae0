package interfaces

import (
	"context"

	"github.com/holiman/uint256"

	domaintypes "shieldwallet/internal/domain/types"
)

// PublicToken is the clear ERC-20 side of a token pair. Write methods sign
// and submit a transaction from signer.
type PublicToken interface {
	BalanceOf(ctx context.Context, owner domaintypes.Address) (*uint256.Int, error)
	Allowance(ctx context.Context, owner, spender domaintypes.Address) (*uint256.Int, error)
	Approve(
		ctx context.Context,
		signer Signer,
		spender domaintypes.Address,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
	Transfer(
		ctx context.Context,
		signer Signer,
		to domaintypes.Address,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
	// Mint is only available on test tokens.
	Mint(
		ctx context.Context,
		signer Signer,
		to domaintypes.Address,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
}

// PrivateToken is the shielded side of a token pair.
type PrivateToken interface {
	BalanceOf(ctx context.Context, owner domaintypes.Address) (domaintypes.BalanceHandle, error)
	Shield(ctx context.Context, signer Signer, amount *uint256.Int) (domaintypes.TxHash, error)
	Unshield(ctx context.Context, signer Signer, amount *uint256.Int) (domaintypes.TxHash, error)
	Transfer(
		ctx context.Context,
		signer Signer,
		to domaintypes.Address,
		ciphertext *uint256.Int,
		signature []byte,
	) (domaintypes.TxHash, error)
}

// Chain binds token contracts and waits for transactions.
type Chain interface {
	ChainID(ctx context.Context) (uint64, error)
	PublicToken(addr domaintypes.Address) PublicToken
	PrivateToken(addr domaintypes.Address) PrivateToken
	WaitMined(ctx context.Context, tx domaintypes.TxHash) (domaintypes.Receipt, error)
}
