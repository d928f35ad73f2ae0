package public

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// Service moves clear ERC-20 balance.
type Service struct {
	chain domain.Chain
}

// New constructs a public token Service.
func New(chain domain.Chain) *Service {
	return &Service{chain: chain}
}

// Send transfers amount public units to to.
//
// Steps:
//  1. Reject the zero address and a zero amount.
//  2. Check the signer's public balance covers amount.
//  3. Submit transfer(to, amount) and wait for it to be mined.
func (s *Service) Send(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	if domain.IsZeroAddress(to) {
		return domain.TxHash{}, fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, to.Hex())
	}
	if amount == nil || amount.IsZero() {
		return domain.TxHash{}, fmt.Errorf("amount must be positive")
	}
	token := s.chain.PublicToken(pair.PublicAddress)

	bal, err := token.BalanceOf(ctx, signer.Address())
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("read public balance: %w", err)
	}
	if bal.Lt(amount) {
		return domain.TxHash{}, domain.ErrInsufficientBalance
	}

	tx, err := token.Transfer(ctx, signer, to, amount)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("submit transfer: %w", err)
	}
	s.logSubmitted("public transfer submitted", signer, pair, to, tx)

	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Mint mints amount public units to to. Only test tokens expose mint; on
// other tokens the transaction reverts.
func (s *Service) Mint(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	to domain.Address,
	amount *uint256.Int,
) (domain.TxHash, error) {
	if domain.IsZeroAddress(to) {
		to = signer.Address()
	}
	if amount == nil || amount.IsZero() {
		return domain.TxHash{}, fmt.Errorf("amount must be positive")
	}
	tx, err := s.chain.PublicToken(pair.PublicAddress).Mint(ctx, signer, to, amount)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("submit mint: %w", err)
	}
	s.logSubmitted("mint submitted", signer, pair, to, tx)

	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

func (s *Service) logSubmitted(msg string, signer domain.Signer, pair domain.TokenPair, to domain.Address, tx domain.TxHash) {
	logger.Log.WithFields(logrus.Fields{
		"component": "public",
		"from":      signer.Address().Hex(),
		"to":        to.Hex(),
		"token":     pair.Name,
		"tx":        tx.Hex(),
	}).Info(msg)
}

// Compile-time assertion that Service implements domain.PublicTokenService.
var _ domain.PublicTokenService = (*Service)(nil)
