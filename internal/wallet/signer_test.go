package wallet_test

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/store"
	"shieldwallet/internal/wallet"
)

func TestParsePrivateKeyHex_KnownAddress(t *testing.T) {
	s, err := wallet.ParsePrivateKeyHex("0x0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", s.Address().Hex())
}

func TestParsePrivateKeyHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "zz", "01", "0x0000000000000000000000000000000000000000000000000000000000000000"} {
		_, err := wallet.ParsePrivateKeyHex(in)
		require.Error(t, err, in)
	}
}

func TestSignMessage_RecoversSigner(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)

	msg := []byte("MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEA")
	sig, err := s.SignMessage(context.Background(), msg)
	require.NoError(t, err)
	require.Len(t, sig, wallet.SignatureLength)
	require.Contains(t, []byte{27, 28}, sig[64])

	addr, err := wallet.RecoverAddress(msg, sig)
	require.NoError(t, err)
	require.Equal(t, s.Address(), addr)

	other, err := wallet.RecoverAddress([]byte("tampered"), sig)
	require.NoError(t, err)
	require.NotEqual(t, s.Address(), other)
}

func TestRecoverAddress_AcceptsZeroBasedV(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	sig, err := s.SignMessage(context.Background(), []byte("hello"))
	require.NoError(t, err)
	sig[64] -= 27

	addr, err := wallet.RecoverAddress([]byte("hello"), sig)
	require.NoError(t, err)
	require.Equal(t, s.Address(), addr)
}

func TestSignMessage_CancelledContext(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.SignMessage(ctx, []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestKeyFile_RoundTrip(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wallet.key")

	require.NoError(t, wallet.SaveKeyFile(path, "pw", s))
	loaded, err := wallet.LoadKeyFile(path, "pw")
	require.NoError(t, err)
	require.Equal(t, s.Address(), loaded.Address())
}

func TestKeyFile_SealedOnDisk(t *testing.T) {
	const keyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	s, err := wallet.ParsePrivateKeyHex(keyHex)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wallet.key")
	require.NoError(t, wallet.SaveKeyFile(path, "pw", s))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(b)), keyHex)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = wallet.LoadKeyFile(path, "wrong")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestKeyFile_EmptyPassphraseRefused(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wallet.key")
	require.Error(t, wallet.SaveKeyFile(path, "", s))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestSignTx_RecoversSender(t *testing.T) {
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	chainID := big.NewInt(31337)

	for _, tx := range []*types.Transaction{
		types.NewTx(&types.LegacyTx{Nonce: 3, GasPrice: big.NewInt(1), Gas: 21000, To: &to}),
		types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     4,
			GasTipCap: big.NewInt(1),
			GasFeeCap: big.NewInt(10),
			Gas:       60000,
			To:        &to,
			Data:      []byte{0xa9, 0x05, 0x9c, 0xbb},
		}),
	} {
		signed, err := s.SignTx(context.Background(), tx, chainID)
		require.NoError(t, err)
		from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
		require.NoError(t, err)
		require.Equal(t, s.Address(), from)
		require.Equal(t, chainID, signed.ChainId())
	}
}
