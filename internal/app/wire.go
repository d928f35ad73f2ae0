package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shieldwallet/internal/chain"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/proxy"
	balancesvc "shieldwallet/internal/services/balance"
	onboardingsvc "shieldwallet/internal/services/onboarding"
	publicsvc "shieldwallet/internal/services/public"
	shieldsvc "shieldwallet/internal/services/shield"
	transfersvc "shieldwallet/internal/services/transfer"
	unshieldsvc "shieldwallet/internal/services/unshield"
	"shieldwallet/internal/store"
)

// Wire bundles all stores, clients and services for the CLI.
type Wire struct {
	*App
	Config Config
	Keys   domain.KeyStore
	Proxy  domain.ProxyClient
	Chain  domain.Chain
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// Key store
	keys, err := openKeyStore(cfg)
	if err != nil {
		return nil, err
	}

	// MPC proxy client, honouring an injected HTTP client
	px := proxy.NewHTTP(cfg.Proxy.URL, time.Duration(cfg.Proxy.Timeout))
	if cfg.HTTP != nil {
		px.HTTP = cfg.HTTP
	}

	// Chain client over ethclient; the HTTP transport does not connect yet
	hc := cfg.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: time.Duration(cfg.Chain.Timeout)}
	}
	ch, err := chain.Dial(context.Background(), cfg.Chain.RPCURL, hc)
	if err != nil {
		return nil, err
	}
	ch.StaticChainID = cfg.Chain.ChainID
	if cfg.Chain.ReceiptInterval > 0 {
		ch.ReceiptInterval = time.Duration(cfg.Chain.ReceiptInterval)
	}

	return NewWireWith(cfg, keys, px, ch), nil
}

// NewWireWith builds the services over already constructed dependencies.
func NewWireWith(cfg Config, keys domain.KeyStore, px domain.ProxyClient, ch domain.Chain) *Wire {
	unshield := unshieldsvc.New(ch, unshieldsvc.NewTracker(), unshieldsvc.Config{
		Interval:    time.Duration(cfg.Unshield.PollInterval),
		MaxAttempts: cfg.Unshield.MaxAttempts,
	})
	return &Wire{
		App: New(
			onboardingsvc.New(keys, px),
			balancesvc.New(keys, px, ch),
			transfersvc.New(keys, ch),
			shieldsvc.New(ch),
			unshield,
			publicsvc.New(ch),
		),
		Config: cfg,
		Keys:   keys,
		Proxy:  px,
		Chain:  ch,
	}
}

func openKeyStore(cfg Config) (domain.KeyStore, error) {
	switch cfg.KeyStore.Backend {
	case "", KeyStoreFile:
		if cfg.Home == "" {
			return nil, fmt.Errorf("keystore: file backend needs a home directory")
		}
		return store.NewKeyFileStore(cfg.Home, cfg.Passphrase), nil
	case KeyStoreMemory:
		return store.NewKeyMemoryStore(), nil
	case KeyStorePostgres:
		return store.OpenKeySQLStore(cfg.KeyStore.DSN)
	default:
		return nil, fmt.Errorf("keystore: unknown backend %q", cfg.KeyStore.Backend)
	}
}
