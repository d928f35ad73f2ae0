package balance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/chain/chaintest"
	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/services/balance"
	"shieldwallet/internal/store"
	"shieldwallet/internal/wallet"
)

const chainID = 31337

// ledgerProxy re-encrypts known handles under key, like the MPC network.
type ledgerProxy struct {
	key     domain.AESKey
	amounts map[string]uint64
	err     error
	calls   int

	gotHandle  string
	gotChainID uint64
	gotSig     string
}

func (p *ledgerProxy) Onboard(context.Context, string, string) (domain.OnboardResponse, error) {
	return domain.OnboardResponse{}, errors.New("not used")
}

func (p *ledgerProxy) EncryptToUser(ctx context.Context, handle string, chainID uint64, sig string) (domain.EncryptToUserResponse, error) {
	p.calls++
	p.gotHandle, p.gotChainID, p.gotSig = handle, chainID, sig
	if p.err != nil {
		return domain.EncryptToUserResponse{}, p.err
	}
	amount, ok := p.amounts[handle]
	if !ok {
		return domain.EncryptToUserResponse{}, domain.ErrUnknownHandle
	}
	enc, err := crypto.EncryptUint(p.key, amount)
	if err != nil {
		return domain.EncryptToUserResponse{}, err
	}
	raw := enc.Bytes()
	return domain.EncryptToUserResponse{Output: crypto.B64(raw[:])}, nil
}

type countingSigner struct {
	domain.Signer
	calls int
}

func (c *countingSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	c.calls++
	return c.Signer.SignMessage(ctx, msg)
}

type fixture struct {
	keys   *store.KeyMemoryStore
	proxy  *ledgerProxy
	signer *countingSigner
	svc    *balance.Service
	chain  *chaintest.Chain
	pair   domain.TokenPair
}

func setup(t *testing.T, onboarded bool) *fixture {
	t.Helper()
	inner, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)

	key := domain.AESKey{9, 8, 7, 6, 5, 4, 3, 2, 1}
	keys := store.NewKeyMemoryStore()
	if onboarded {
		require.NoError(t, keys.Put(inner.Address(), key))
	}
	handle42 := domain.HandleFromInt(uint256.NewInt(42)).Bytes32()
	px := &ledgerProxy{key: key, amounts: map[string]uint64{crypto.B64(handle42[:]): 100000}}

	ch := chaintest.New(chainID)
	pair := domain.TokenPair{
		Name:            "DEMO",
		PublicAddress:   domain.BytesToAddress([]byte{0x01}),
		PrivateAddress:  domain.BytesToAddress([]byte{0x02}),
		PublicDecimals:  domain.DefaultPublicDecimals,
		PrivateDecimals: domain.DefaultPrivateDecimals,
	}
	ch.AddPair(pair)

	return &fixture{
		keys:   keys,
		proxy:  px,
		signer: &countingSigner{Signer: inner},
		svc:    balance.New(keys, px, ch),
		chain:  ch,
		pair:   pair,
	}
}

func TestDecrypt_Handle42Is100000(t *testing.T) {
	f := setup(t, true)
	v, err := f.svc.Decrypt(context.Background(), f.signer, domain.HandleFromInt(uint256.NewInt(42)), chainID)
	require.NoError(t, err)
	require.Equal(t, uint64(100000), v.Uint64())

	require.Equal(t, uint64(chainID), f.proxy.gotChainID)
	raw, err := crypto.FromB64(f.proxy.gotHandle)
	require.NoError(t, err)
	require.Len(t, raw, 32)
	require.Equal(t, byte(42), raw[31])

	sig, err := crypto.FromB64(f.proxy.gotSig)
	require.NoError(t, err)
	addr, err := wallet.RecoverAddress([]byte(f.proxy.gotHandle), sig)
	require.NoError(t, err)
	require.Equal(t, f.signer.Address(), addr)
}

func TestDecrypt_ZeroHandleShortCircuits(t *testing.T) {
	f := setup(t, true)
	v, err := f.svc.Decrypt(context.Background(), f.signer, domain.BalanceHandle{}, chainID)
	require.NoError(t, err)
	require.True(t, v.IsZero())
	require.Zero(t, f.proxy.calls)
	require.Zero(t, f.signer.calls)
}

func TestDecrypt_MissingKeyBeforeAnyCall(t *testing.T) {
	f := setup(t, false)
	_, err := f.svc.Decrypt(context.Background(), f.signer, domain.HandleFromInt(uint256.NewInt(42)), chainID)
	require.ErrorIs(t, err, domain.ErrMissingKey)
	require.Zero(t, f.proxy.calls)
	require.Zero(t, f.signer.calls)
}

func TestDecrypt_UnknownHandleIsDistinct(t *testing.T) {
	f := setup(t, true)
	_, err := f.svc.Decrypt(context.Background(), f.signer, domain.HandleFromInt(uint256.NewInt(7)), chainID)
	require.ErrorIs(t, err, domain.ErrUnknownHandle)
	require.False(t, errors.Is(err, domain.ErrDecryption))
}

func TestDecrypt_OtherProxyErrorsAreDecryptionFailures(t *testing.T) {
	f := setup(t, true)
	f.proxy.err = &domain.HTTPError{Status: 502, Body: "bad gateway"}
	_, err := f.svc.Decrypt(context.Background(), f.signer, domain.HandleFromInt(uint256.NewInt(42)), chainID)
	require.ErrorIs(t, err, domain.ErrDecryption)
	require.ErrorIs(t, err, domain.ErrProxyHTTP)
}

func TestDecrypt_WalletRejected(t *testing.T) {
	f := setup(t, true)
	rejecting := rejectSigner{f.signer}
	_, err := f.svc.Decrypt(context.Background(), rejecting, domain.HandleFromInt(uint256.NewInt(42)), chainID)
	require.ErrorIs(t, err, domain.ErrWalletRejected)
	require.Zero(t, f.proxy.calls)
}

type rejectSigner struct{ domain.Signer }

func (rejectSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return nil, domain.ErrWalletRejected
}

func TestPrivateBalance_ReadsHandleFromChain(t *testing.T) {
	f := setup(t, true)
	_, priv := f.chain.AddPair(f.pair)
	priv.Handles[f.signer.Address()] = domain.HandleFromInt(uint256.NewInt(42))

	v, err := f.svc.PrivateBalance(context.Background(), f.signer, f.pair)
	require.NoError(t, err)
	require.Equal(t, uint64(100000), v.Uint64())
}

func TestOverview_FetchesBoth(t *testing.T) {
	f := setup(t, true)
	pub, priv := f.chain.AddPair(f.pair)
	pub.Balances[f.signer.Address()] = uint256.NewInt(5_000_000_000_000_000_000)
	priv.Handles[f.signer.Address()] = domain.HandleFromInt(uint256.NewInt(42))

	ov, err := f.svc.Overview(context.Background(), f.signer, f.pair)
	require.NoError(t, err)
	require.Equal(t, f.signer.Address(), ov.Owner)
	require.Equal(t, uint64(5_000_000_000_000_000_000), ov.Public.Uint64())
	require.Equal(t, uint64(100000), ov.Private.Uint64())
}

func TestOverview_PropagatesPrivateError(t *testing.T) {
	f := setup(t, false)
	_, err := f.svc.Overview(context.Background(), f.signer, f.pair)
	require.ErrorIs(t, err, domain.ErrMissingKey)
}
