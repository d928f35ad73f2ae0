package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/logger"
	"shieldwallet/internal/mpcproxy"
	"shieldwallet/internal/store"
)

var (
	listen     string
	chainID    uint64
	keysDir    string
	passphrase string
	logLevel   string
	logFormat  string
)

func main() {
	root := &cobra.Command{
		Use:   "mpcproxy",
		Short: "Development MPC proxy for shieldwallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logger.Config{Level: logLevel, Format: logFormat}); err != nil {
				return err
			}
			if logLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			var keys domain.KeyStore = store.NewKeyMemoryStore()
			if keysDir != "" {
				if err := os.MkdirAll(keysDir, 0o700); err != nil {
					return err
				}
				keys = store.NewKeyFileStore(keysDir, passphrase)
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           mpcproxy.New(keys, chainID).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Log.WithField("addr", listen).Info("mpc proxy listening")

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Log.Info("mpc proxy stopped")
			return nil
		},
	}

	root.Flags().StringVar(&listen, "listen", ":8080", "listen address")
	root.Flags().Uint64Var(&chainID, "chain-id", 0, "accepted chain id (0 accepts any)")
	root.Flags().StringVar(&keysDir, "keys-dir", "", "persist issued keys in this directory")
	root.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing --keys-dir")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	root.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
