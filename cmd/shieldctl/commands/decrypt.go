package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/domain"
	"shieldwallet/internal/units"
)

var (
	decryptDecimals int
	decryptChainID  uint64
)

// decrypt-handle <handle>: ask the MPC proxy to re-encrypt a handle and
// decrypt it locally.
func decryptHandleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt-handle <handle>",
		Short: "Decrypt a balance handle (decimal or 0x hex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			h, err := units.ParseBase(args[0])
			if err != nil {
				return fmt.Errorf("handle %q: %w", args[0], err)
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			chainID := decryptChainID
			if chainID == 0 {
				if chainID, err = appCtx.Chain.ChainID(cmd.Context()); err != nil {
					return err
				}
			}
			v, err := appCtx.Balance.Decrypt(cmd.Context(), signer, domain.HandleFromInt(h), chainID)
			if err != nil {
				return err
			}
			printAmount(cmd, v)
			return nil
		},
	}
	cmd.Flags().IntVar(&decryptDecimals, "decimals", -1, "also print the value scaled by these decimals")
	cmd.Flags().Uint64Var(&decryptChainID, "chain-id", 0, "chain id to sign for (default: ask the node)")
	return cmd
}

// decrypt-amount <ciphertext>: decrypt a transfer ciphertext locally.
func decryptAmountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt-amount <ciphertext>",
		Short: "Decrypt a transfer amount ciphertext with the stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			ct, err := units.ParseBase(args[0])
			if err != nil {
				return fmt.Errorf("ciphertext %q: %w", args[0], err)
			}
			signer, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			v, err := appCtx.Transfer.DecryptAmount(signer.Address(), ct)
			if err != nil {
				return err
			}
			printAmount(cmd, v)
			return nil
		},
	}
	cmd.Flags().IntVar(&decryptDecimals, "decimals", -1, "also print the value scaled by these decimals")
	return cmd
}
