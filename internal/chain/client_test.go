package chain_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"shieldwallet/internal/chain"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/wallet"
)

// backend is a scripted chain.Backend.
type backend struct {
	mu sync.Mutex

	chainID   int64
	baseFee   *big.Int
	callRet   []byte
	callErr   error
	calls     []ethereum.CallMsg
	sent      []*types.Transaction
	receipt   func(poll int) (*types.Receipt, error)
	polls     int
	nonce     uint64
	chainIDs  int
	estimates []ethereum.CallMsg
}

func (b *backend) ChainID(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chainIDs++
	return big.NewInt(b.chainID), nil
}

func (b *backend) CallContract(ctx context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, msg)
	return b.callRet, b.callErr
}

func (b *backend) HeaderByNumber(ctx context.Context, _ *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: b.baseFee}, nil
}

func (b *backend) PendingNonceAt(ctx context.Context, _ common.Address) (uint64, error) {
	return b.nonce, nil
}

func (b *backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) { return big.NewInt(5), nil }

func (b *backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) { return big.NewInt(2), nil }

func (b *backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.estimates = append(b.estimates, msg)
	return 60000, nil
}

func (b *backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, tx)
	return nil
}

func (b *backend) TransactionReceipt(ctx context.Context, _ common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	b.polls++
	poll, fn := b.polls, b.receipt
	b.mu.Unlock()
	if fn == nil {
		return nil, ethereum.NotFound
	}
	return fn(poll)
}

func newClient(b *backend) *chain.Client {
	c := chain.NewClient(b)
	c.ReceiptInterval = time.Millisecond
	return c
}

func newSigner(t *testing.T) *wallet.LocalSigner {
	t.Helper()
	s, err := wallet.GenerateLocalSigner()
	require.NoError(t, err)
	return s
}

var (
	owner = domain.BytesToAddress([]byte{0x0a})
	token = domain.BytesToAddress([]byte{0x0b})
)

func TestChainID_Cached(t *testing.T) {
	b := &backend{chainID: 31337}
	c := newClient(b)
	for i := 0; i < 3; i++ {
		id, err := c.ChainID(context.Background())
		require.NoError(t, err)
		require.Equal(t, uint64(31337), id)
	}
	require.Equal(t, 1, b.chainIDs)

	c.StaticChainID = 5
	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(5), id)
}

func TestPrivateToken_BalanceOfHandle(t *testing.T) {
	ret := uint256.NewInt(42).Bytes32()
	b := &backend{callRet: ret[:]}
	h, err := newClient(b).PrivateToken(token).BalanceOf(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, uint64(42), h.Int().Uint64())

	require.Len(t, b.calls, 1)
	require.Equal(t, token, *b.calls[0].To)
	want, err := chain.PrivateTokenABI.Pack("balanceOf", owner)
	require.NoError(t, err)
	require.Equal(t, want, b.calls[0].Data)
}

func TestPublicToken_CallError(t *testing.T) {
	b := &backend{callErr: errors.New("execution reverted")}
	_, err := newClient(b).PublicToken(token).BalanceOf(context.Background(), owner)
	require.ErrorContains(t, err, "execution reverted")
}

func TestPublicToken_ApproveSignsDynamicFeeTx(t *testing.T) {
	b := &backend{chainID: 31337, baseFee: big.NewInt(100), nonce: 9}
	c := newClient(b)
	s := newSigner(t)

	hash, err := c.PublicToken(token).Approve(context.Background(), s, owner, domainMax())
	require.NoError(t, err)
	require.Len(t, b.sent, 1)
	tx := b.sent[0]
	require.Equal(t, hash, tx.Hash())

	require.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	require.Equal(t, uint64(9), tx.Nonce())
	require.Equal(t, uint64(60000), tx.Gas())
	require.Equal(t, big.NewInt(2), tx.GasTipCap())
	require.Equal(t, big.NewInt(202), tx.GasFeeCap())
	require.Equal(t, token, *tx.To())

	want, err := chain.PublicTokenABI.Pack("approve", owner, domainMax().ToBig())
	require.NoError(t, err)
	require.Equal(t, want, tx.Data())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), tx)
	require.NoError(t, err)
	require.Equal(t, s.Address(), from)
	require.Equal(t, s.Address(), b.estimates[0].From)
}

func TestPrivateToken_TransferSignsLegacyTx(t *testing.T) {
	b := &backend{chainID: 1337}
	s := newSigner(t)
	sig := bytes.Repeat([]byte{0xab}, 65)

	_, err := newClient(b).PrivateToken(token).Transfer(context.Background(), s, owner, uint256.NewInt(7), sig)
	require.NoError(t, err)
	require.Len(t, b.sent, 1)
	tx := b.sent[0]
	require.Equal(t, uint8(types.LegacyTxType), tx.Type())
	require.Equal(t, big.NewInt(5), tx.GasPrice())

	want, err := chain.PrivateTokenABI.Pack("transfer", owner, chain.EncryptedValue{Ciphertext: big.NewInt(7), Signature: sig})
	require.NoError(t, err)
	require.Equal(t, want, tx.Data())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), tx)
	require.NoError(t, err)
	require.Equal(t, s.Address(), from)
}

func TestTransact_RejectedSignatureSendsNothing(t *testing.T) {
	b := &backend{chainID: 1}
	s := wallet.NewConfirmingSigner(newSigner(t), bytes.NewReader([]byte("n\n")), &bytes.Buffer{}, false)

	_, err := newClient(b).PublicToken(token).Mint(context.Background(), s, owner, uint256.NewInt(1))
	require.ErrorIs(t, err, domain.ErrWalletRejected)
	require.Empty(t, b.sent)
}

func TestWaitMined_PollsUntilMined(t *testing.T) {
	b := &backend{receipt: func(poll int) (*types.Receipt, error) {
		if poll < 3 {
			return nil, ethereum.NotFound
		}
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(16), GasUsed: 21000}, nil
	}}
	rcpt, err := newClient(b).WaitMined(context.Background(), domain.TxHash{1})
	require.NoError(t, err)
	require.True(t, rcpt.Succeeded())
	require.Equal(t, uint64(16), rcpt.BlockNumber)
	require.Equal(t, uint64(21000), rcpt.GasUsed)
	require.Equal(t, 3, b.polls)
}

func TestWaitMined_Reverted(t *testing.T) {
	b := &backend{receipt: func(int) (*types.Receipt, error) {
		return &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(1)}, nil
	}}
	rcpt, err := newClient(b).WaitMined(context.Background(), domain.TxHash{1})
	require.ErrorIs(t, err, domain.ErrTxReverted)
	require.False(t, rcpt.Succeeded())
}

func TestWaitMined_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newClient(&backend{}).WaitMined(ctx, domain.TxHash{1})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitMined_BackendError(t *testing.T) {
	b := &backend{receipt: func(int) (*types.Receipt, error) { return nil, errors.New("boom") }}
	_, err := newClient(b).WaitMined(context.Background(), domain.TxHash{1})
	require.ErrorContains(t, err, "boom")
}

func TestDial_JSONRPC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if req.Method == "eth_chainId" {
			resp["result"] = "0x7a69"
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	c, err := chain.Dial(context.Background(), srv.URL, srv.Client())
	require.NoError(t, err)
	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(31337), id)
}

func domainMax() *uint256.Int { return new(uint256.Int).SetAllOne() }
