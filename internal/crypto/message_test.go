package crypto_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
)

func mustAddress(t *testing.T, s string) domain.Address {
	t.Helper()
	a, err := domain.ParseAddress(s)
	require.NoError(t, err)
	return a
}

func TestBuildTransferMessage_PackedLayout(t *testing.T) {
	sender := mustAddress(t, "0x1111111111111111111111111111111111111111")
	contract := mustAddress(t, "0x2222222222222222222222222222222222222222")
	msg := domain.TransferMessage{Sender: sender, Contract: contract, Encrypted: uint256.NewInt(0x2a)}

	got := crypto.BuildTransferMessage(msg)
	require.Len(t, got, domain.TransferMessageLength)

	want := "1111111111111111111111111111111111111111" +
		"2222222222222222222222222222222222222222" +
		"000000000000000000000000000000000000000000000000000000000000002a"
	require.Equal(t, want, hex.EncodeToString(got))
}

func TestBuildTransferMessage_Deterministic(t *testing.T) {
	enc, err := crypto.EncryptUint(domain.AESKey{3}, 12345)
	require.NoError(t, err)
	msg := domain.TransferMessage{
		Sender:    mustAddress(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"),
		Contract:  mustAddress(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"),
		Encrypted: enc.Int(),
	}
	a := crypto.BuildTransferMessage(msg)
	b := crypto.BuildTransferMessage(msg)
	require.True(t, bytes.Equal(a, b))
}

func TestPrepareTransfer_EncryptsForKey(t *testing.T) {
	key := domain.AESKey{7, 7, 7}
	sender := mustAddress(t, "0x1111111111111111111111111111111111111111")
	contract := mustAddress(t, "0x2222222222222222222222222222222222222222")

	enc, msg, err := crypto.PrepareTransfer(key, sender, contract, 250)
	require.NoError(t, err)
	require.Equal(t, sender, msg.Sender)
	require.Equal(t, contract, msg.Contract)
	require.True(t, msg.Encrypted.Eq(enc.Int()))

	plain, err := crypto.DecryptUint(key, msg.Encrypted)
	require.NoError(t, err)
	require.Equal(t, uint64(250), plain.Uint64())
}
