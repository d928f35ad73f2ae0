package wallet_test

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/wallet"
)

func TestConfirmingSigner_Approve(t *testing.T) {
	inner, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	var out bytes.Buffer
	c := wallet.NewConfirmingSigner(inner, strings.NewReader("y\n"), &out, false)

	sig, err := c.SignMessage(context.Background(), []byte("hello"))
	require.NoError(t, err)
	require.Len(t, sig, wallet.SignatureLength)
	require.Contains(t, out.String(), "hello")
	require.Equal(t, inner.Address(), c.Address())
}

func TestConfirmingSigner_Reject(t *testing.T) {
	inner, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	for _, answer := range []string{"n\n", "\n", ""} {
		c := wallet.NewConfirmingSigner(inner, strings.NewReader(answer), &bytes.Buffer{}, false)
		_, err := c.SignMessage(context.Background(), []byte("hello"))
		require.ErrorIs(t, err, domain.ErrWalletRejected)
	}
}

func TestConfirmingSigner_AutoApproveSkipsPrompt(t *testing.T) {
	inner, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	var out bytes.Buffer
	c := wallet.NewConfirmingSigner(inner, strings.NewReader(""), &out, true)

	_, err = c.SignMessage(context.Background(), []byte{0x00, 0xff})
	require.NoError(t, err)
	require.Empty(t, out.String())
}

func TestConfirmingSigner_TransactionPrompt(t *testing.T) {
	inner, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")
	tx := types.NewTx(&types.LegacyTx{Nonce: 7, GasPrice: big.NewInt(1), Gas: 50000, To: &to, Data: []byte{0xde, 0xad}})

	var out bytes.Buffer
	c := wallet.NewConfirmingSigner(inner, strings.NewReader("yes\n"), &out, false)
	signed, err := c.SignTx(context.Background(), tx, big.NewInt(1))
	require.NoError(t, err)
	require.Contains(t, out.String(), to.Hex())
	require.Contains(t, out.String(), "nonce: 7")
	require.Contains(t, out.String(), "0xdead")

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), signed)
	require.NoError(t, err)
	require.Equal(t, inner.Address(), from)

	c = wallet.NewConfirmingSigner(inner, strings.NewReader("n\n"), &bytes.Buffer{}, false)
	_, err = c.SignTx(context.Background(), tx, big.NewInt(1))
	require.ErrorIs(t, err, domain.ErrWalletRejected)
}
