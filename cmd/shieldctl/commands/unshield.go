package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/units"
)

// unshield <token> <amount>: burn private balance and wait for the MPC
// network to release the public tokens.
func unshieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshield <token> <amount>",
		Short: "Convert private balance back into public tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			amount, err := privateAmount(pair, args[1])
			if err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "unshielding %s %s, waiting for MPC settlement...\n", args[1], pair.Name)

			req, err := appCtx.Unshield.Unshield(cmd.Context(), signer, pair, amount)
			if req != nil && req.TxHash != (domain.TxHash{}) {
				fmt.Fprintf(out, "tx: %s\n", req.TxHash.Hex())
			}
			// The burn is on chain; the public side may still settle later.
			if errors.Is(err, domain.ErrUnshieldDelayed) {
				fmt.Fprintln(out, domain.UserMessage(err))
				if req != nil {
					fmt.Fprintf(out, "request %s still pending after %d checks, check `shieldctl balance %s` later\n",
						req.ID, req.Attempts, pair.Name)
				}
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "public balance: %s -> %s %s\n",
				units.FormatUnits(req.PriorBalance, pair.PublicDecimals),
				units.FormatUnits(req.NewBalance, pair.PublicDecimals),
				pair.Name)
			return nil
		},
	}
}
