package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"

	"shieldwallet/internal/domain"
)

// ConfirmingSigner asks for approval before every signature, the way a
// browser wallet pops up a request.
type ConfirmingSigner struct {
	Inner       domain.Signer
	In          io.Reader
	Out         io.Writer
	AutoApprove bool

	reader *bufio.Reader
}

// NewConfirmingSigner prompts on out and reads the answer from in.
func NewConfirmingSigner(inner domain.Signer, in io.Reader, out io.Writer, autoApprove bool) *ConfirmingSigner {
	return &ConfirmingSigner{Inner: inner, In: in, Out: out, AutoApprove: autoApprove}
}

func (c *ConfirmingSigner) Address() domain.Address { return c.Inner.Address() }

// SignMessage shows msg and signs only on an explicit yes.
func (c *ConfirmingSigner) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	prompt := fmt.Sprintf("Signature request from %s\n  message: %s\n", c.Inner.Address().Hex(), preview(msg))
	if err := c.approve(prompt); err != nil {
		return nil, err
	}
	return c.Inner.SignMessage(ctx, msg)
}

// SignTx shows the destination, nonce, gas and calldata of tx before signing.
func (c *ConfirmingSigner) SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	to := "contract creation"
	if tx.To() != nil {
		to = tx.To().Hex()
	}
	prompt := fmt.Sprintf(
		"Transaction request from %s on chain %s\n  to: %s\n  nonce: %d  gas: %d\n  data: 0x%x\n",
		c.Inner.Address().Hex(), chainID, to, tx.Nonce(), tx.Gas(), tx.Data(),
	)
	if err := c.approve(prompt); err != nil {
		return nil, err
	}
	return c.Inner.SignTx(ctx, tx, chainID)
}

// approve returns nil on an explicit yes, ErrWalletRejected otherwise.
func (c *ConfirmingSigner) approve(prompt string) error {
	if c.AutoApprove {
		return nil
	}
	ok, err := c.confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWalletRejected
	}
	return nil
}

func (c *ConfirmingSigner) confirm(prompt string) (bool, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	fmt.Fprint(c.Out, prompt+"Sign? [y/N]: ")
	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// preview renders printable messages as text and anything else as hex.
func preview(msg []byte) string {
	for _, b := range msg {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("0x%x", msg)
		}
	}
	return string(msg)
}

var _ domain.Signer = (*ConfirmingSigner)(nil)
