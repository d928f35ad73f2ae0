package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
)

// KeyGenerator returns a fresh RSA key pair.
type KeyGenerator func() (domain.KeyPair, error)

// Service runs the onboarding key exchange.
type Service struct {
	keys        domain.KeyStore
	proxy       domain.ProxyClient
	generate    KeyGenerator
	reconstruct crypto.Reconstructor
	now         func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithKeyGenerator replaces RSA key generation.
func WithKeyGenerator(g KeyGenerator) Option { return func(s *Service) { s.generate = g } }

// WithReconstructor replaces the share decryption and combination step.
func WithReconstructor(r crypto.Reconstructor) Option { return func(s *Service) { s.reconstruct = r } }

// New constructs an onboarding Service.
func New(keys domain.KeyStore, proxy domain.ProxyClient, opts ...Option) *Service {
	s := &Service{
		keys:        keys,
		proxy:       proxy,
		generate:    crypto.GenerateRSAKeyPair,
		reconstruct: crypto.ReconstructUserKey,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Onboard exchanges a fresh RSA key for the signer's AES key and stores it.
//
// Steps:
//  1. Generate an RSA-2048 key pair for this attempt.
//  2. Have the wallet sign base64(public key).
//  3. Send the public key and signature to the proxy.
//  4. Split the returned blob into its two RSA ciphertexts.
//  5. Decrypt both shares and combine them into the AES key.
//  6. Store the key under the signer's address, replacing any previous one.
func (s *Service) Onboard(ctx context.Context, signer domain.Signer) (domain.UserKeyRecord, error) {
	addr := signer.Address()
	log := logger.Log.WithFields(logrus.Fields{"component": "onboarding", "address": addr.Hex()})

	kp, err := s.generate()
	if err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("generate RSA key pair: %w", err)
	}

	pubB64 := crypto.B64(kp.PublicKey)
	sig, err := signer.SignMessage(ctx, []byte(pubB64))
	if err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("sign onboarding key: %w", err)
	}

	resp, err := s.proxy.Onboard(ctx, pubB64, crypto.B64(sig))
	if err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("onboard: %w", err)
	}
	log.WithField("message", resp.Message).Debug("proxy accepted onboarding request")

	blob, err := crypto.FromB64(resp.RSACiphertexts)
	if err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("decode key shares: %w", err)
	}
	share0, share1, err := crypto.SplitKeyShares(blob)
	if err != nil {
		return domain.UserKeyRecord{}, err
	}

	key, err := s.reconstruct(kp.PrivateKey, crypto.Hex(share0), crypto.Hex(share1))
	if err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("reconstruct user key: %w", err)
	}

	if err := s.keys.Put(addr, key); err != nil {
		return domain.UserKeyRecord{}, fmt.Errorf("store user key: %w", err)
	}
	log.WithField("fingerprint", crypto.Fingerprint(key)).Info("onboarding complete")

	return domain.UserKeyRecord{Address: addr, Key: key, UpdatedAt: s.now()}, nil
}

// Compile-time assertion that Service implements domain.OnboardingService.
var _ domain.OnboardingService = (*Service)(nil)
