package shield_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/chain/chaintest"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/services/shield"
)

var (
	owner  = domain.BytesToAddress([]byte{0xaa})
	signer = chaintest.Signer{Addr: owner}
	pair   = domain.TokenPair{
		Name:           "DEMO",
		PublicAddress:  domain.BytesToAddress([]byte{0x01}),
		PrivateAddress: domain.BytesToAddress([]byte{0x02}),
	}
)

func setup(t *testing.T) (*shield.Service, *chaintest.PublicToken, *chaintest.PrivateToken) {
	t.Helper()
	ch := chaintest.New(1)
	pub, priv := ch.AddPair(pair)
	return shield.New(ch), pub, priv
}

func TestShield_InsufficientBalance(t *testing.T) {
	svc, pub, priv := setup(t)
	pub.Balances[owner] = uint256.NewInt(5)
	pub.Allowances[[2]domain.Address{owner, pair.PrivateAddress}] = uint256.NewInt(100)

	_, err := svc.Shield(context.Background(), signer, pair, uint256.NewInt(10))
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.Empty(t, priv.Shields)
}

func TestShield_InsufficientAllowance(t *testing.T) {
	svc, pub, priv := setup(t)
	pub.Balances[owner] = uint256.NewInt(100)
	pub.Allowances[[2]domain.Address{owner, pair.PrivateAddress}] = uint256.NewInt(9)

	_, err := svc.Shield(context.Background(), signer, pair, uint256.NewInt(10))
	require.ErrorIs(t, err, domain.ErrInsufficientAllowance)
	require.Empty(t, priv.Shields)
}

func TestShield_ApproveThenShield(t *testing.T) {
	svc, pub, priv := setup(t)
	pub.Balances[owner] = uint256.NewInt(100)

	_, err := svc.Approve(context.Background(), signer, pair, nil)
	require.NoError(t, err)
	require.Len(t, pub.Approvals, 1)
	require.Equal(t, pair.PrivateAddress, pub.Approvals[0].Spender)
	require.True(t, pub.Approvals[0].Amount.Eq(new(uint256.Int).SetAllOne()))

	tx, err := svc.Shield(context.Background(), signer, pair, uint256.NewInt(100))
	require.NoError(t, err)
	require.NotEqual(t, domain.TxHash{}, tx)
	require.Len(t, priv.Shields, 1)
	require.Equal(t, uint64(100), priv.Shields[0].Amount.Uint64())
}

func TestShield_Reverted(t *testing.T) {
	svc, pub, priv := setup(t)
	pub.Balances[owner] = uint256.NewInt(100)
	pub.Allowances[[2]domain.Address{owner, pair.PrivateAddress}] = uint256.NewInt(100)
	priv.Revert = true

	_, err := svc.Shield(context.Background(), signer, pair, uint256.NewInt(1))
	require.ErrorIs(t, err, domain.ErrTxReverted)
}
