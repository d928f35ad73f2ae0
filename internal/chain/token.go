package chain

import (
	"context"

	"github.com/holiman/uint256"

	"shieldwallet/internal/domain"
)

type publicToken struct {
	c    *Client
	addr domain.Address
}

func (t *publicToken) BalanceOf(ctx context.Context, owner domain.Address) (*uint256.Int, error) {
	ret, err := t.c.call(ctx, t.addr, PublicTokenABI, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return unpackUint(PublicTokenABI, "balanceOf", ret)
}

func (t *publicToken) Allowance(ctx context.Context, owner, spender domain.Address) (*uint256.Int, error) {
	ret, err := t.c.call(ctx, t.addr, PublicTokenABI, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return unpackUint(PublicTokenABI, "allowance", ret)
}

func (t *publicToken) Approve(
	ctx context.Context,
	signer domain.Signer,
	spender domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	return t.c.transact(ctx, signer, t.addr, PublicTokenABI, "approve", spender, amount.ToBig())
}

func (t *publicToken) Transfer(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	return t.c.transact(ctx, signer, t.addr, PublicTokenABI, "transfer", to, amount.ToBig())
}

func (t *publicToken) Mint(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	return t.c.transact(ctx, signer, t.addr, PublicTokenABI, "mint", to, amount.ToBig())
}

type privateToken struct {
	c    *Client
	addr domain.Address
}

// BalanceOf returns the owner's balance handle; the plaintext stays with the
// MPC network.
func (t *privateToken) BalanceOf(ctx context.Context, owner domain.Address) (domain.BalanceHandle, error) {
	ret, err := t.c.call(ctx, t.addr, PrivateTokenABI, "balanceOf", owner)
	if err != nil {
		return domain.BalanceHandle{}, err
	}
	v, err := unpackUint(PrivateTokenABI, "balanceOf", ret)
	if err != nil {
		return domain.BalanceHandle{}, err
	}
	return domain.HandleFromInt(v), nil
}

func (t *privateToken) Shield(ctx context.Context, signer domain.Signer, amount *uint256.Int) (domain.TxHash, error) {
	return t.c.transact(ctx, signer, t.addr, PrivateTokenABI, "shield", amount.ToBig())
}

func (t *privateToken) Unshield(ctx context.Context, signer domain.Signer, amount *uint256.Int) (domain.TxHash, error) {
	return t.c.transact(ctx, signer, t.addr, PrivateTokenABI, "unshield", amount.ToBig())
}

func (t *privateToken) Transfer(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	ciphertext *uint256.Int,
	signature []byte,
) (domain.TxHash, error) {
	value := EncryptedValue{Ciphertext: ciphertext.ToBig(), Signature: signature}
	return t.c.transact(ctx, signer, t.addr, PrivateTokenABI, "transfer", to, value)
}

var (
	_ domain.PublicToken  = (*publicToken)(nil)
	_ domain.PrivateToken = (*privateToken)(nil)
)
