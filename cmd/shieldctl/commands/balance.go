package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/units"
)

var publicOnly bool

// balance <token>: public and decrypted private balance.
func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance <token>",
		Short: "Show the public and private balance of a token pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if publicOnly {
				v, err := appCtx.Balance.PublicBalance(cmd.Context(), signer.Address(), pair)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "public:  %s\n", units.FormatUnits(v, pair.PublicDecimals))
				return nil
			}

			if err := requirePassphrase(); err != nil {
				return err
			}
			ov, err := appCtx.Balance.Overview(cmd.Context(), signer, pair)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "account: %s\n", ov.Owner.Hex())
			fmt.Fprintf(out, "public:  %s %s\n", units.FormatUnits(ov.Public, pair.PublicDecimals), pair.Name)
			fmt.Fprintf(out, "private: %s %s\n", units.FormatUnits(ov.Private, pair.PrivateDecimals), pair.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&publicOnly, "public", false, "only read the public balance (no signature)")
	return cmd
}
