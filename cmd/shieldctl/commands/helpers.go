package commands

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"shieldwallet/internal/app"
	"shieldwallet/internal/domain"
	"shieldwallet/internal/units"
)

// requirePassphrase guards commands that open the sealed key file.
func requirePassphrase() error {
	backend := appCtx.Config.KeyStore.Backend
	if (backend == "" || backend == app.KeyStoreFile) && passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}

func resolveToken(ref string) (domain.TokenPair, error) {
	return appCtx.Config.Token(ref)
}

func privateAmount(pair domain.TokenPair, s string) (*uint256.Int, error) {
	v, err := units.ParseUnits(s, pair.PrivateDecimals)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

func publicAmount(pair domain.TokenPair, s string) (*uint256.Int, error) {
	v, err := units.ParseUnits(s, pair.PublicDecimals)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

func printAmount(cmd *cobra.Command, v *uint256.Int) {
	raw := v.ToBig().String()
	if decryptDecimals < 0 || decryptDecimals > 77 {
		fmt.Fprintln(cmd.OutOrStdout(), raw)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", raw, units.FormatUnits(v, uint8(decryptDecimals)))
}
