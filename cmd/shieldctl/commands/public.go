package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/units"
)

var mintTo string

// send-public <token> <to> <amount>: plain ERC-20 transfer of the public side.
func sendPublicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-public <token> <to> <amount>",
		Short: "Transfer public tokens to another address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := resolveToken(args[0])
			if err != nil {
				return err
			}
			to, err := domain.ParseAddress(args[1])
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidRecipient, err)
			}
			amount, err := publicAmount(pair, args[2])
			if err != nil {
				return err
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			tx, err := appCtx.Public.Send(cmd.Context(), signer, pair, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s %s to %s\ntx: %s\n",
				units.FormatUnits(amount, pair.PublicDecimals), pair.Name, to.Hex(), tx.Hex())
			return nil
		},
	}
}

// mint <token> <amount>: mint test tokens, to the wallet unless --to is set.
func mintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint <token> <amount>",
		Short: "Mint public test tokens",
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
			var to domain.Address
			if mintTo != "" {
				if to, err = domain.ParseAddress(mintTo); err != nil {
					return fmt.Errorf("%w: %v", domain.ErrInvalidRecipient, err)
				}
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			if domain.IsZeroAddress(to) {
				to = signer.Address()
			}
			tx, err := appCtx.Public.Mint(cmd.Context(), signer, pair, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "minted %s %s to %s\ntx: %s\n",
				units.FormatUnits(amount, pair.PublicDecimals), pair.Name, to.Hex(), tx.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&mintTo, "to", "", "recipient (default the wallet address)")
	return cmd
}
