package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// DefaultReceiptInterval is how often WaitMined polls for a receipt.
const DefaultReceiptInterval = time.Second

// Backend is the part of *ethclient.Client the chain client uses.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client implements domain.Chain. Transactions are built and signed locally
// by the caller's domain.Signer and sent as raw transactions.
type Client struct {
	backend         Backend
	ReceiptInterval time.Duration
	// StaticChainID, when non-zero, is returned by ChainID without a call.
	StaticChainID uint64

	mu      sync.Mutex
	chainID uint64
}

// Dial connects to a JSON-RPC endpoint. A nil httpClient uses the default
// transport.
func Dial(ctx context.Context, url string, httpClient *http.Client) (*Client, error) {
	var opts []rpc.ClientOption
	if httpClient != nil {
		opts = append(opts, rpc.WithHTTPClient(httpClient))
	}
	rc, err := rpc.DialOptions(ctx, url, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(ethclient.NewClient(rc)), nil
}

// NewClient wraps an already connected backend.
func NewClient(backend Backend) *Client {
	return &Client{backend: backend, ReceiptInterval: DefaultReceiptInterval}
}

// ChainID returns the static chain id, or asks the node once and caches it.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	if c.StaticChainID != 0 {
		return c.StaticChainID, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chainID != 0 {
		return c.chainID, nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("chain id: %w", err)
	}
	if !id.IsUint64() {
		return 0, fmt.Errorf("chain id %s out of range", id)
	}
	c.chainID = id.Uint64()
	return c.chainID, nil
}

func (c *Client) PublicToken(addr domain.Address) domain.PublicToken {
	return &publicToken{c: c, addr: addr}
}

func (c *Client) PrivateToken(addr domain.Address) domain.PrivateToken {
	return &privateToken{c: c, addr: addr}
}

// WaitMined polls for the receipt of tx until it is mined or ctx is done. A
// reverted transaction returns its receipt and domain.ErrTxReverted.
func (c *Client) WaitMined(ctx context.Context, tx domain.TxHash) (domain.Receipt, error) {
	interval := c.ReceiptInterval
	if interval <= 0 {
		interval = DefaultReceiptInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r, err := c.backend.TransactionReceipt(ctx, tx)
		switch {
		case err == nil:
			rcpt := toReceipt(tx, r)
			logger.Log.WithFields(logrus.Fields{
				"tx":     tx.Hex(),
				"block":  rcpt.BlockNumber,
				"status": rcpt.Status,
			}).Debug("transaction mined")
			if !rcpt.Succeeded() {
				return rcpt, fmt.Errorf("%w: %s", domain.ErrTxReverted, tx.Hex())
			}
			return rcpt, nil
		case !errors.Is(err, ethereum.NotFound):
			if ctx.Err() != nil {
				return domain.Receipt{}, ctx.Err()
			}
			return domain.Receipt{}, fmt.Errorf("receipt %s: %w", tx.Hex(), err)
		}
		select {
		case <-ctx.Done():
			return domain.Receipt{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func toReceipt(tx domain.TxHash, r *types.Receipt) domain.Receipt {
	out := domain.Receipt{TxHash: tx, Status: r.Status, GasUsed: r.GasUsed}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out
}

// call runs method read-only against the latest block.
func (c *Client) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...any) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	ret, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	return ret, nil
}

// transact builds a transaction calling method, has signer sign it and
// submits it.
//
// Steps:
//  1. Resolve chain id, pending nonce and gas limit.
//  2. Price the transaction: EIP-1559 fees when the head block carries a base
//     fee, a legacy gas price otherwise.
//  3. Sign with signer and send the raw transaction.
func (c *Client) transact(
	ctx context.Context,
	signer domain.Signer,
	to common.Address,
	contract abi.ABI,
	method string,
	args ...any,
) (domain.TxHash, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("pack %s: %w", method, err)
	}
	from := signer.Address()

	id, err := c.ChainID(ctx)
	if err != nil {
		return domain.TxHash{}, err
	}
	chainID := new(big.Int).SetUint64(id)

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("nonce: %w", err)
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("estimate gas for %s: %w", method, err)
	}

	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("head: %w", err)
	}
	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := c.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return domain.TxHash{}, fmt.Errorf("gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Data:      data,
		})
	} else {
		price, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return domain.TxHash{}, fmt.Errorf("gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: price,
			Gas:      gas,
			To:       &to,
			Data:     data,
		})
	}

	signed, err := signer.SignTx(ctx, tx, chainID)
	if err != nil {
		return domain.TxHash{}, err
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return domain.TxHash{}, fmt.Errorf("send %s: %w", method, err)
	}
	logger.Log.WithFields(logrus.Fields{
		"from":   from.Hex(),
		"to":     to.Hex(),
		"method": method,
		"nonce":  nonce,
		"tx":     signed.Hash().Hex(),
	}).Info("transaction submitted")
	return signed.Hash(), nil
}

var _ domain.Chain = (*Client)(nil)
