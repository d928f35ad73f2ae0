package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/crypto"
)

// onboard: obtain this address's AES key from the MPC proxy.
func onboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Exchange a fresh RSA key for this account's AES key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			rec, err := appCtx.Onboarding.Onboard(cmd.Context(), signer)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "onboarded %s (key %s)\n", rec.Address.Hex(), crypto.Fingerprint(rec.Key))
			return nil
		},
	}
}
