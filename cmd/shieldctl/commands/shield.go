package commands

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

var approveMax bool

// shield <token> <amount>: move public balance into the private token.
func shieldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shield <token> <amount>",
		Short: "Convert public tokens into private balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			amount, err := publicAmount(pair, args[1])
			if err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			tx, err := appCtx.Shield.Shield(cmd.Context(), signer, pair, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shielded %s %s\ntx: %s\n", args[1], pair.Name, tx.Hex())
			return nil
		},
	}
}

// approve <token> [amount]: allow the private token to pull public tokens.
func approveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <token> [amount]",
		Short: "Approve the private token to spend public tokens",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			var amount *uint256.Int
			switch {
			case len(args) == 2:
				if amount, err = publicAmount(pair, args[1]); err != nil {
					return err
				}
			case !approveMax:
				return fmt.Errorf("give an amount or --max")
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			tx, err := appCtx.Shield.Approve(cmd.Context(), signer, pair, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved %s for %s\ntx: %s\n", pair.PrivateAddress.Hex(), pair.Name, tx.Hex())
			return nil
		},
	}
	cmd.Flags().BoolVar(&approveMax, "max", false, "approve the maximum amount")
	return cmd
}
