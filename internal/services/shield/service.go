package shield

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// Service approves and shields public tokens.
type Service struct {
	chain domain.Chain
}

// New constructs a shield Service.
func New(chain domain.Chain) *Service {
	return &Service{chain: chain}
}

// Approve lets the private token pull amount public tokens from the signer.
// A nil amount approves the maximum uint256.
func (s *Service) Approve(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	amount *uint256.Int,
) (domain.TxHash, error) {
	if amount == nil {
		amount = new(uint256.Int).SetAllOne()
	}
	tx, err := s.chain.PublicToken(pair.PublicAddress).Approve(ctx, signer, pair.PrivateAddress, amount)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("submit approve: %w", err)
	}
	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Shield converts amount public units into private balance.
//
// Steps:
//  1. Check the public balance covers amount.
//  2. Check the private token's allowance covers amount.
//  3. Submit shield(amount) and wait for it to be mined.
func (s *Service) Shield(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	amount *uint256.Int,
) (domain.TxHash, error) {
	owner := signer.Address()
	public := s.chain.PublicToken(pair.PublicAddress)

	bal, err := public.BalanceOf(ctx, owner)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("read public balance: %w", err)
	}
	if bal.Lt(amount) {
		return domain.TxHash{}, domain.ErrInsufficientBalance
	}

	allowance, err := public.Allowance(ctx, owner, pair.PrivateAddress)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("read allowance: %w", err)
	}
	if allowance.Lt(amount) {
		return domain.TxHash{}, domain.ErrInsufficientAllowance
	}

	tx, err := s.chain.PrivateToken(pair.PrivateAddress).Shield(ctx, signer, amount)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("submit shield: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "shield",
		"owner":     owner.Hex(),
		"token":     pair.Name,
		"tx":        tx.Hex(),
	}).Info("shield submitted")

	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Compile-time assertion that Service implements domain.ShieldService.
var _ domain.ShieldService = (*Service)(nil)
