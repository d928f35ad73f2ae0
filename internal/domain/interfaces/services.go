package interfaces

import (
	"context"

	"github.com/holiman/uint256"

	domaintypes "shieldwallet/internal/domain/types"
)

// OnboardingService exchanges a fresh RSA key for the user's AES key.
type OnboardingService interface {
	Onboard(ctx context.Context, signer Signer) (domaintypes.UserKeyRecord, error)
}

// BalanceService reads and decrypts balances.
type BalanceService interface {
	Decrypt(
		ctx context.Context,
		signer Signer,
		handle domaintypes.BalanceHandle,
		chainID uint64,
	) (*uint256.Int, error)
	PrivateBalance(ctx context.Context, signer Signer, pair domaintypes.TokenPair) (*uint256.Int, error)
	PublicBalance(ctx context.Context, owner domaintypes.Address, pair domaintypes.TokenPair) (*uint256.Int, error)
	Overview(ctx context.Context, signer Signer, pair domaintypes.TokenPair) (domaintypes.BalanceOverview, error)
}

// TransferService builds, signs and submits private transfers.
type TransferService interface {
	Prepare(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		amount uint64,
	) (domaintypes.PreparedTransfer, error)
	Send(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		to domaintypes.Address,
		amount uint64,
	) (domaintypes.TxHash, error)
	DecryptAmount(owner domaintypes.Address, encrypted *uint256.Int) (*uint256.Int, error)
}

// ShieldService converts public balance into private balance.
type ShieldService interface {
	Approve(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
	Shield(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
}

// UnshieldService converts private balance back and waits for the MPC callback.
type UnshieldService interface {
	Unshield(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		amount *uint256.Int,
	) (*domaintypes.UnshieldRequest, error)
}

// PublicTokenService moves clear ERC-20 balance.
type PublicTokenService interface {
	Send(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		to domaintypes.Address,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
	Mint(
		ctx context.Context,
		signer Signer,
		pair domaintypes.TokenPair,
		to domaintypes.Address,
		amount *uint256.Int,
	) (domaintypes.TxHash, error)
}
