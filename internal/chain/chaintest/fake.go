// Package chaintest provides an in-memory domain.Chain for tests.
package chaintest

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"shieldwallet/internal/domain"
)

// Chain is a fake chain holding one fake contract per address.
type Chain struct {
	mu       sync.Mutex
	id       uint64
	public   map[domain.Address]*PublicToken
	private  map[domain.Address]*PrivateToken
	receipts map[domain.TxHash]domain.Receipt
	nextTx   uint64
}

// New returns an empty chain reporting chainID.
func New(chainID uint64) *Chain {
	return &Chain{
		id:       chainID,
		public:   make(map[domain.Address]*PublicToken),
		private:  make(map[domain.Address]*PrivateToken),
		receipts: make(map[domain.TxHash]domain.Receipt),
	}
}

// AddPair registers fakes for both sides of pair.
func (c *Chain) AddPair(pair domain.TokenPair) (*PublicToken, *PrivateToken) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pub := &PublicToken{chain: c, Balances: map[domain.Address]*uint256.Int{}, Allowances: map[[2]domain.Address]*uint256.Int{}}
	priv := &PrivateToken{chain: c, Handles: map[domain.Address]domain.BalanceHandle{}}
	c.public[pair.PublicAddress] = pub
	c.private[pair.PrivateAddress] = priv
	return pub, priv
}

func (c *Chain) ChainID(ctx context.Context) (uint64, error) { return c.id, nil }

func (c *Chain) PublicToken(addr domain.Address) domain.PublicToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.public[addr]
}

func (c *Chain) PrivateToken(addr domain.Address) domain.PrivateToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.private[addr]
}

// WaitMined returns the recorded receipt, or ErrTxReverted for a failed one.
func (c *Chain) WaitMined(ctx context.Context, tx domain.TxHash) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[tx]
	if !ok {
		return domain.Receipt{}, fmt.Errorf("unknown transaction %s", tx.Hex())
	}
	if !r.Succeeded() {
		return r, fmt.Errorf("%w: %s", domain.ErrTxReverted, tx.Hex())
	}
	return r, nil
}

func (c *Chain) mine(success bool) domain.TxHash {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextTx++
	var h domain.TxHash
	binary.BigEndian.PutUint64(h[24:], c.nextTx)
	status := uint64(0)
	if success {
		status = 1
	}
	c.receipts[h] = domain.Receipt{TxHash: h, BlockNumber: c.nextTx, Status: status}
	return h
}

// Approval records one approve call.
type Approval struct {
	From, Spender domain.Address
	Amount        *uint256.Int
}

// PublicTransfer records one clear transfer or mint.
type PublicTransfer struct {
	From, To domain.Address
	Amount   *uint256.Int
}

// PublicToken is a fake ERC-20. BalanceFunc, when set, overrides Balances
// and receives the 1-based call count.
type PublicToken struct {
	chain *Chain
	mu    sync.Mutex

	Balances    map[domain.Address]*uint256.Int
	Allowances  map[[2]domain.Address]*uint256.Int
	BalanceFunc func(owner domain.Address, call int) (*uint256.Int, error)
	Approvals   []Approval
	Transfers   []PublicTransfer
	Mints       []PublicTransfer
	Err         error

	BalanceCalls int
}

func (t *PublicToken) BalanceOf(ctx context.Context, owner domain.Address) (*uint256.Int, error) {
	t.mu.Lock()
	t.BalanceCalls++
	call, fn := t.BalanceCalls, t.BalanceFunc
	t.mu.Unlock()
	if fn != nil {
		return fn(owner, call)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	if b, ok := t.Balances[owner]; ok {
		return new(uint256.Int).Set(b), nil
	}
	return new(uint256.Int), nil
}

func (t *PublicToken) Allowance(ctx context.Context, owner, spender domain.Address) (*uint256.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	if a, ok := t.Allowances[[2]domain.Address{owner, spender}]; ok {
		return new(uint256.Int).Set(a), nil
	}
	return new(uint256.Int), nil
}

func (t *PublicToken) Approve(
	ctx context.Context,
	signer domain.Signer,
	spender domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	from := signer.Address()
	t.mu.Lock()
	t.Approvals = append(t.Approvals, Approval{From: from, Spender: spender, Amount: new(uint256.Int).Set(amount)})
	t.Allowances[[2]domain.Address{from, spender}] = new(uint256.Int).Set(amount)
	t.mu.Unlock()
	return t.chain.mine(true), nil
}

// Transfer moves amount between clear balances. It reverts when the sender
// is short.
func (t *PublicToken) Transfer(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	from := signer.Address()
	t.mu.Lock()
	t.Transfers = append(t.Transfers, PublicTransfer{From: from, To: to, Amount: new(uint256.Int).Set(amount)})
	bal := t.balance(from)
	ok := !bal.Lt(amount)
	if ok {
		t.Balances[from] = new(uint256.Int).Sub(bal, amount)
		t.Balances[to] = new(uint256.Int).Add(t.balance(to), amount)
	}
	t.mu.Unlock()
	return t.chain.mine(ok), nil
}

// Mint credits amount to to.
func (t *PublicToken) Mint(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	t.mu.Lock()
	t.Mints = append(t.Mints, PublicTransfer{From: signer.Address(), To: to, Amount: new(uint256.Int).Set(amount)})
	t.Balances[to] = new(uint256.Int).Add(t.balance(to), amount)
	t.mu.Unlock()
	return t.chain.mine(true), nil
}

func (t *PublicToken) balance(owner domain.Address) *uint256.Int {
	if b, ok := t.Balances[owner]; ok {
		return b
	}
	return new(uint256.Int)
}

// Call records one shield or unshield call.
type Call struct {
	From   domain.Address
	Amount *uint256.Int
}

// TransferCall records one private transfer.
type TransferCall struct {
	From, To   domain.Address
	Ciphertext *uint256.Int
	Signature  []byte
}

// PrivateToken is a fake shielded token. BalanceFunc, when set, overrides
// Handles and receives the 1-based call count.
type PrivateToken struct {
	chain *Chain
	mu    sync.Mutex

	Handles     map[domain.Address]domain.BalanceHandle
	BalanceFunc func(owner domain.Address, call int) (domain.BalanceHandle, error)
	Revert      bool

	BalanceCalls int
	Shields      []Call
	Unshields    []Call
	Transfers    []TransferCall
}

func (t *PrivateToken) BalanceOf(ctx context.Context, owner domain.Address) (domain.BalanceHandle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.BalanceCalls++
	if t.BalanceFunc != nil {
		return t.BalanceFunc(owner, t.BalanceCalls)
	}
	return t.Handles[owner], nil
}

func (t *PrivateToken) Shield(ctx context.Context, signer domain.Signer, amount *uint256.Int) (domain.TxHash, error) {
	t.mu.Lock()
	t.Shields = append(t.Shields, Call{From: signer.Address(), Amount: new(uint256.Int).Set(amount)})
	revert := t.Revert
	t.mu.Unlock()
	return t.chain.mine(!revert), nil
}

func (t *PrivateToken) Unshield(ctx context.Context, signer domain.Signer, amount *uint256.Int) (domain.TxHash, error) {
	t.mu.Lock()
	t.Unshields = append(t.Unshields, Call{From: signer.Address(), Amount: new(uint256.Int).Set(amount)})
	revert := t.Revert
	t.mu.Unlock()
	return t.chain.mine(!revert), nil
}

func (t *PrivateToken) Transfer(
	ctx context.Context,
	signer domain.Signer,
	to domain.Address,
	ciphertext *uint256.Int,
	signature []byte,
) (domain.TxHash, error) {
	t.mu.Lock()
	t.Transfers = append(t.Transfers, TransferCall{
		From:       signer.Address(),
		To:         to,
		Ciphertext: new(uint256.Int).Set(ciphertext),
		Signature:  append([]byte(nil), signature...),
	})
	revert := t.Revert
	t.mu.Unlock()
	return t.chain.mine(!revert), nil
}

var (
	_ domain.Chain        = (*Chain)(nil)
	_ domain.PublicToken  = (*PublicToken)(nil)
	_ domain.PrivateToken = (*PrivateToken)(nil)
)
