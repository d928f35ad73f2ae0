package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokens: list the configured token pairs.
func tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List configured token pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(appCtx.Config.Tokens) == 0 {
				fmt.Fprintln(out, "no tokens configured")
				return nil
			}
			for _, p := range appCtx.Config.Tokens {
				pair, err := resolveToken(p.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-8s public %s (%d)  private %s (%d)\n",
					pair.Name, pair.PublicAddress.Hex(), pair.PublicDecimals,
					pair.PrivateAddress.Hex(), pair.PrivateDecimals)
			}
			return nil
		},
	}
}
