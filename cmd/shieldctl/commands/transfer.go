package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/services/transfer"
)

// transfer <token> <to> <amount>: private transfer with an encrypted amount.
func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <token> <to> <amount>",
		Short: "Send a private transfer; the amount is encrypted with your key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			to, err := domain.ParseAddress(args[1])
			if err != nil {
				return fmt.Errorf("recipient: %w", err)
			}
			v, err := privateAmount(pair, args[2])
			if err != nil {
				return err
			}
			amount, err := transfer.AmountToUint64(v)
			if err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			tx, err := appCtx.Transfer.Send(cmd.Context(), signer, pair, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s %s to %s\ntx: %s\n", args[2], pair.Name, to.Hex(), tx.Hex())
			return nil
		},
	}
}
