package transfer_test

import (
	"context"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/chain/chaintest"
	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/services/transfer"
	"shieldwallet/internal/store"
	"shieldwallet/internal/wallet"
)

var (
	pair = domain.TokenPair{
		Name:           "DEMO",
		PublicAddress:  domain.BytesToAddress([]byte{0x01}),
		PrivateAddress: domain.BytesToAddress([]byte{0x02}),
	}
	recipient = domain.BytesToAddress([]byte{0x0c})
	userKey   = domain.AESKey{1, 1, 2, 3, 5, 8, 13, 21}
)

func setup(t *testing.T) (*transfer.Service, *wallet.LocalSigner, *chaintest.PrivateToken, *store.KeyMemoryStore) {
	t.Helper()
	signer, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	keys := store.NewKeyMemoryStore()
	require.NoError(t, keys.Put(signer.Address(), userKey))

	ch := chaintest.New(1)
	_, priv := ch.AddPair(pair)
	return transfer.New(keys, ch), signer, priv, keys
}

func TestPrepare_MessageAndSignature(t *testing.T) {
	svc, signer, _, _ := setup(t)

	p, err := svc.Prepare(context.Background(), signer, pair, 250)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), p.Message.Sender)
	require.Equal(t, pair.PrivateAddress, p.Message.Contract)
	require.True(t, p.Message.Encrypted.Eq(p.Amount.Int()))

	msg := crypto.BuildTransferMessage(p.Message)
	require.Len(t, msg, domain.TransferMessageLength)
	addr, err := wallet.RecoverAddress(msg, p.Signature)
	require.NoError(t, err)
	require.Equal(t, signer.Address(), addr)

	plain, err := crypto.DecryptUint(userKey, p.Message.Encrypted)
	require.NoError(t, err)
	require.Equal(t, uint64(250), plain.Uint64())
}

func TestPrepare_FreshCiphertextEachCall(t *testing.T) {
	svc, signer, _, _ := setup(t)
	a, err := svc.Prepare(context.Background(), signer, pair, 1)
	require.NoError(t, err)
	b, err := svc.Prepare(context.Background(), signer, pair, 1)
	require.NoError(t, err)
	require.False(t, a.Message.Encrypted.Eq(b.Message.Encrypted))
}

func TestPrepare_MissingKey(t *testing.T) {
	svc, _, _, _ := setup(t)
	stranger, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	_, err = svc.Prepare(context.Background(), stranger, pair, 1)
	require.ErrorIs(t, err, domain.ErrMissingKey)
}

func TestSend_SubmitsTuple(t *testing.T) {
	svc, signer, priv, _ := setup(t)

	tx, err := svc.Send(context.Background(), signer, pair, recipient, 12345)
	require.NoError(t, err)
	require.NotEqual(t, domain.TxHash{}, tx)

	require.Len(t, priv.Transfers, 1)
	got := priv.Transfers[0]
	require.Equal(t, signer.Address(), got.From)
	require.Equal(t, recipient, got.To)
	require.Len(t, got.Signature, wallet.SignatureLength)

	amount, err := svc.DecryptAmount(signer.Address(), got.Ciphertext)
	require.NoError(t, err)
	require.Equal(t, uint64(12345), amount.Uint64())
}

func TestSend_Reverted(t *testing.T) {
	svc, signer, priv, _ := setup(t)
	priv.Revert = true
	_, err := svc.Send(context.Background(), signer, pair, recipient, 1)
	require.ErrorIs(t, err, domain.ErrTxReverted)
}

func TestSend_RejectedSignatureSubmitsNothing(t *testing.T) {
	svc, signer, priv, _ := setup(t)
	_, err := svc.Send(context.Background(), rejectSigner{signer}, pair, recipient, 1)
	require.ErrorIs(t, err, domain.ErrWalletRejected)
	require.Empty(t, priv.Transfers)
}

func TestSend_ZeroRecipient(t *testing.T) {
	svc, signer, priv, _ := setup(t)
	_, err := svc.Send(context.Background(), signer, pair, domain.Address{}, 1)
	require.ErrorIs(t, err, domain.ErrInvalidRecipient)
	require.Empty(t, priv.Transfers)
}

type rejectSigner struct{ domain.Signer }

func (rejectSigner) SignMessage(context.Context, []byte) ([]byte, error) {
	return nil, domain.ErrWalletRejected
}

func TestAmountToUint64(t *testing.T) {
	v, err := transfer.AmountToUint64(uint256.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)

	_, err = transfer.AmountToUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 64))
	require.ErrorIs(t, err, domain.ErrAmountOutOfRange)
}
