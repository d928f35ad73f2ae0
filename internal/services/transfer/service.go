package transfer

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// Service prepares and sends private transfers.
type Service struct {
	keys  domain.KeyStore
	chain domain.Chain
}

// New constructs a transfer Service.
func New(keys domain.KeyStore, chain domain.Chain) *Service {
	return &Service{keys: keys, chain: chain}
}

// Prepare encrypts amount and collects the wallet's signature over the
// transfer message.
//
// Steps:
//  1. Load the sender's AES key.
//  2. Encrypt amount as 8 bytes big-endian with fresh randomness.
//  3. Pack sender, private token address and the encrypted integer.
//  4. Have the wallet sign the packed bytes.
func (s *Service) Prepare(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	amount uint64,
) (domain.PreparedTransfer, error) {
	key, err := s.key(signer.Address())
	if err != nil {
		return domain.PreparedTransfer{}, err
	}
	defer crypto.Wipe(key[:])

	enc, msg, err := crypto.PrepareTransfer(key, signer.Address(), pair.PrivateAddress, amount)
	if err != nil {
		return domain.PreparedTransfer{}, fmt.Errorf("encrypt amount: %w", err)
	}
	sig, err := signer.SignMessage(ctx, crypto.BuildTransferMessage(msg))
	if err != nil {
		return domain.PreparedTransfer{}, fmt.Errorf("sign transfer: %w", err)
	}
	return domain.PreparedTransfer{Message: msg, Amount: enc, Signature: sig}, nil
}

// Send prepares a transfer of amount to recipient and submits it, waiting
// for the transaction to be mined.
func (s *Service) Send(
	ctx context.Context,
	signer domain.Signer,
	pair domain.TokenPair,
	to domain.Address,
	amount uint64,
) (domain.TxHash, error) {
	if domain.IsZeroAddress(to) {
		return domain.TxHash{}, fmt.Errorf("%w: %s", domain.ErrInvalidRecipient, to.Hex())
	}
	prepared, err := s.Prepare(ctx, signer, pair, amount)
	if err != nil {
		return domain.TxHash{}, err
	}

	tx, err := s.chain.PrivateToken(pair.PrivateAddress).Transfer(
		ctx, signer, to, prepared.Message.Encrypted, prepared.Signature)
	if err != nil {
		return domain.TxHash{}, fmt.Errorf("submit transfer: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "transfer",
		"from":      signer.Address().Hex(),
		"to":        to.Hex(),
		"token":     pair.Name,
		"tx":        tx.Hex(),
	}).Info("private transfer submitted")

	if _, err := s.chain.WaitMined(ctx, tx); err != nil {
		return tx, err
	}
	return tx, nil
}

// DecryptAmount decrypts a transfer ciphertext, for example one read from
// transaction history, with owner's stored key.
func (s *Service) DecryptAmount(owner domain.Address, encrypted *uint256.Int) (*uint256.Int, error) {
	key, err := s.key(owner)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key[:])
	return crypto.DecryptUint(key, encrypted)
}

func (s *Service) key(addr domain.Address) (domain.AESKey, error) {
	key, ok, err := s.keys.Get(addr)
	if err != nil {
		return domain.AESKey{}, fmt.Errorf("load user key: %w", err)
	}
	if !ok {
		return domain.AESKey{}, domain.ErrMissingKey
	}
	return key, nil
}

// AmountToUint64 narrows an amount in private units to the 64 bits the
// ciphertext carries.
func AmountToUint64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, domain.ErrAmountOutOfRange
	}
	return v.Uint64(), nil
}

// Compile-time assertion that Service implements domain.TransferService.
var _ domain.TransferService = (*Service)(nil)
