package chaintest

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"shieldwallet/internal/domain"
)

// Signer is a domain.Signer for a fixed address. The fake chain never checks
// signatures, so it signs nothing.
type Signer struct {
	Addr domain.Address
}

func (s Signer) Address() domain.Address { return s.Addr }

func (s Signer) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	return make([]byte, 65), ctx.Err()
}

func (s Signer) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return tx, ctx.Err()
}

var _ domain.Signer = Signer{}
