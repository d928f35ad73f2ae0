package interfaces

import (
	"context"
	"math/big"

	gethtypes "github.com/ethereum/go-ethereum/core/types"

	domaintypes "shieldwallet/internal/domain/types"
)

// Signer is the connected wallet. Both methods may block on a user prompt.
//
// SignMessage produces an EIP-191 personal_sign signature (r||s||v, 65
// bytes) over msg. SignTx signs a transaction for chainID with the same key.
type Signer interface {
	Address() domaintypes.Address
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
	SignTx(ctx context.Context, tx *gethtypes.Transaction, chainID *big.Int) (*gethtypes.Transaction, error)
}
