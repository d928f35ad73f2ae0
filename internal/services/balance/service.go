package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// Service decrypts balance handles through the MPC proxy.
type Service struct {
	keys  domain.KeyStore
	proxy domain.ProxyClient
	chain domain.Chain
}

// New constructs a balance Service.
func New(keys domain.KeyStore, proxy domain.ProxyClient, chain domain.Chain) *Service {
	return &Service{keys: keys, proxy: proxy, chain: chain}
}

// Decrypt returns the plaintext amount behind handle.
//
// Steps:
//  1. Load the signer's AES key; without one nothing else happens.
//  2. A zero handle is an uninitialised balance: return 0 locally.
//  3. Have the wallet sign base64 of the 32-byte big-endian handle.
//  4. Ask the proxy to re-encrypt the handle for this user.
//  5. Decrypt the 32-byte ciphertext||randomness output with the AES key.
func (s *Service) Decrypt(
	ctx context.Context,
	signer domain.Signer,
	handle domain.BalanceHandle,
	chainID uint64,
) (*uint256.Int, error) {
	addr := signer.Address()
	key, ok, err := s.keys.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("load user key: %w", err)
	}
	if !ok {
		return nil, domain.ErrMissingKey
	}
	defer crypto.Wipe(key[:])

	if handle.IsZero() {
		return new(uint256.Int), nil
	}

	raw := handle.Bytes32()
	handleB64 := crypto.B64(raw[:])
	sig, err := signer.SignMessage(ctx, []byte(handleB64))
	if err != nil {
		return nil, fmt.Errorf("sign balance handle: %w", err)
	}

	resp, err := s.proxy.EncryptToUser(ctx, handleB64, chainID, crypto.B64(sig))
	switch {
	case errors.Is(err, domain.ErrUnknownHandle):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %w", domain.ErrDecryption, err)
	}

	out, err := crypto.FromB64(resp.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: decode output: %v", domain.ErrDecryption, err)
	}
	v, err := crypto.DecryptUintBytes(key, out)
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "balance",
		"address":   addr.Hex(),
		"handle":    handle.Hex(),
	}).Debug("balance handle decrypted")
	return v, nil
}

// PrivateBalance reads the signer's handle from the private token and
// decrypts it for the connected chain.
func (s *Service) PrivateBalance(ctx context.Context, signer domain.Signer, pair domain.TokenPair) (*uint256.Int, error) {
	// Fail on a missing key before touching the chain.
	if _, ok, err := s.keys.Get(signer.Address()); err != nil {
		return nil, fmt.Errorf("load user key: %w", err)
	} else if !ok {
		return nil, domain.ErrMissingKey
	}
	chainID, err := s.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	handle, err := s.chain.PrivateToken(pair.PrivateAddress).BalanceOf(ctx, signer.Address())
	if err != nil {
		return nil, fmt.Errorf("read balance handle: %w", err)
	}
	return s.Decrypt(ctx, signer, handle, chainID)
}

// PublicBalance reads the clear ERC-20 balance of owner.
func (s *Service) PublicBalance(ctx context.Context, owner domain.Address, pair domain.TokenPair) (*uint256.Int, error) {
	v, err := s.chain.PublicToken(pair.PublicAddress).BalanceOf(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("read public balance: %w", err)
	}
	return v, nil
}

// Overview fetches both balances of pair concurrently.
func (s *Service) Overview(ctx context.Context, signer domain.Signer, pair domain.TokenPair) (domain.BalanceOverview, error) {
	out := domain.BalanceOverview{Owner: signer.Address(), Pair: pair}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.PublicBalance(gctx, out.Owner, pair)
		out.Public = v
		return err
	})
	g.Go(func() error {
		v, err := s.PrivateBalance(gctx, signer, pair)
		out.Private = v
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.BalanceOverview{}, err
	}
	return out, nil
}

// Compile-time assertion that Service implements domain.BalanceService.
var _ domain.BalanceService = (*Service)(nil)
