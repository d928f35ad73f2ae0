package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
	"shieldwallet/internal/services/unshield"
)

// Key store backends.
const (
	KeyStoreFile     = "file"
	KeyStoreMemory   = "memory"
	KeyStorePostgres = "postgres"
)

// Duration is a time.Duration read from JSON as "5s" or as nanoseconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %s", b)
	}
	*d = Duration(n)
	return nil
}

// ProxyConfig locates the MPC proxy.
type ProxyConfig struct {
	URL     string   `json:"url"`
	Timeout Duration `json:"timeout"`
}

// ChainConfig locates the JSON-RPC node.
type ChainConfig struct {
	RPCURL          string   `json:"rpc_url"`
	ChainID         uint64   `json:"chain_id"` // 0 asks the node
	Timeout         Duration `json:"timeout"`
	ReceiptInterval Duration `json:"receipt_interval"`
}

// KeyStoreConfig selects where AES keys live.
type KeyStoreConfig struct {
	Backend string `json:"backend"`
	DSN     string `json:"dsn"`
}

// UnshieldConfig tunes settlement polling.
type UnshieldConfig struct {
	PollInterval Duration `json:"poll_interval"`
	MaxAttempts  int      `json:"max_attempts"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string             `json:"home"` // config directory, e.g. $HOME/.shieldwallet
	Proxy    ProxyConfig        `json:"proxy"`
	Chain    ChainConfig        `json:"chain"`
	KeyStore KeyStoreConfig     `json:"keystore"`
	Logger   logger.Config      `json:"logger"`
	Unshield UnshieldConfig     `json:"unshield"`
	Tokens   []domain.TokenPair `json:"tokens"`

	Passphrase string       `json:"-"` // seals the key file
	HTTP       *http.Client `json:"-"` // optional; used by the proxy and chain clients
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Proxy: ProxyConfig{URL: "http://127.0.0.1:8080", Timeout: Duration(30 * time.Second)},
		Chain: ChainConfig{
			RPCURL:          "http://127.0.0.1:8545",
			Timeout:         Duration(30 * time.Second),
			ReceiptInterval: Duration(time.Second),
		},
		KeyStore: KeyStoreConfig{Backend: KeyStoreFile},
		Logger:   logger.Config{Level: "info", Format: "text"},
		Unshield: UnshieldConfig{
			PollInterval: Duration(unshield.DefaultInterval),
			MaxAttempts:  unshield.DefaultMaxAttempts,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	switch c.KeyStore.Backend {
	case KeyStoreFile, KeyStoreMemory:
	case KeyStorePostgres:
		if c.KeyStore.DSN == "" {
			return fmt.Errorf("keystore: postgres backend needs a dsn")
		}
	default:
		return fmt.Errorf("keystore: unknown backend %q", c.KeyStore.Backend)
	}
	seen := make(map[string]bool)
	for _, p := range c.Tokens {
		if p.Name == "" {
			return fmt.Errorf("tokens: entry without a name")
		}
		if seen[strings.ToLower(p.Name)] {
			return fmt.Errorf("tokens: duplicate name %q", p.Name)
		}
		seen[strings.ToLower(p.Name)] = true
		if domain.IsZeroAddress(p.PublicAddress) || domain.IsZeroAddress(p.PrivateAddress) {
			return fmt.Errorf("tokens: %s needs both addresses", p.Name)
		}
	}
	return nil
}

// Token finds a configured pair by name or by either of its addresses.
// Unset decimals take the defaults.
func (c Config) Token(ref string) (domain.TokenPair, error) {
	addr, addrErr := domain.ParseAddress(ref)
	for _, p := range c.Tokens {
		match := strings.EqualFold(p.Name, ref)
		if addrErr == nil && (p.PublicAddress == addr || p.PrivateAddress == addr) {
			match = true
		}
		if !match {
			continue
		}
		if p.PublicDecimals == 0 {
			p.PublicDecimals = domain.DefaultPublicDecimals
		}
		if p.PrivateDecimals == 0 {
			p.PrivateDecimals = domain.DefaultPrivateDecimals
		}
		return p, nil
	}
	return domain.TokenPair{}, fmt.Errorf("unknown token %q", ref)
}
