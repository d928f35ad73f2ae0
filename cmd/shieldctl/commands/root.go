package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"shieldwallet/internal/app"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
	"shieldwallet/internal/wallet"
)

var (
	configPath  string
	home        string
	passphrase  string
	proxyURL    string
	rpcURL      string
	account     string
	keyFile     string
	autoApprove bool
	logLevel    string

	appCtx *app.Wire

	// buildWire constructs appCtx from the resolved config.
	buildWire = app.NewWire
)

// Execute runs the root command; Ctrl-C cancels the running operation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRoot().ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "shieldctl",
		Short:         "Client for a shielded ERC-20 and its MPC proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if home == "" {
				home = cfg.Home
			}
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".shieldwallet")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			cfg.Home = home
			cfg.Passphrase = passphrase
			if proxyURL != "" {
				cfg.Proxy.URL = proxyURL
			}
			if rpcURL != "" {
				cfg.Chain.RPCURL = rpcURL
			}
			if logLevel != "" {
				cfg.Logger.Level = logLevel
			}
			if err := logger.Init(cfg.Logger); err != nil {
				return err
			}

			appCtx, err = buildWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "JSON config file")
	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.shieldwallet)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the wallet key and stored AES keys")
	root.PersistentFlags().StringVar(&proxyURL, "proxy", "", "MPC proxy base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&rpcURL, "rpc", "", "JSON-RPC endpoint (e.g. http://127.0.0.1:8545)")
	root.PersistentFlags().StringVar(&account, "account", "", "expected wallet address; must match the key file")
	root.PersistentFlags().StringVar(&keyFile, "key-file", "", "sealed wallet key file (default <home>/wallet.key)")
	root.PersistentFlags().BoolVarP(&autoApprove, "yes", "y", false, "approve signature requests without prompting")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		walletCmd(),
		onboardCmd(),
		keyCmd(),
		balanceCmd(),
		decryptHandleCmd(),
		decryptAmountCmd(),
		transferCmd(),
		shieldCmd(),
		approveCmd(),
		unshieldCmd(),
		sendPublicCmd(),
		mintCmd(),
		tokensCmd(),
	)
	return root
}

func keyFilePath() string {
	if keyFile != "" {
		return keyFile
	}
	return filepath.Join(home, "wallet.key")
}

// loadSigner opens the wallet key and wraps it in the confirmation prompt.
func loadSigner(cmd *cobra.Command) (domain.Signer, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase required (-p) to open the wallet key")
	}
	local, err := wallet.LoadKeyFile(keyFilePath(), passphrase)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no wallet key at %s, run `shieldctl wallet new` or pass --key-file", keyFilePath())
		}
		return nil, err
	}
	if account != "" {
		want, err := domain.ParseAddress(account)
		if err != nil {
			return nil, err
		}
		if want != local.Address() {
			return nil, fmt.Errorf("key file holds %s, not %s", local.Address().Hex(), want.Hex())
		}
	}
	return wallet.NewConfirmingSigner(local, cmd.InOrStdin(), cmd.ErrOrStderr(), autoApprove), nil
}
