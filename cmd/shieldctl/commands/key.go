package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"shieldwallet/internal/crypto"
	"shieldwallet/internal/domain"
)

var revealKey bool

// key show|forget: inspect or drop the stored AES key.
func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Inspect or remove the stored AES key",
	}

	show := &cobra.Command{
		Use:   "show [address]",
		Short: "Print the key fingerprint (or the key with --reveal)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			addr, err := keyAddress(cmd, args)
			if err != nil {
				return err
			}
			key, ok, err := appCtx.Keys.Get(addr)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrMissingKey
			}
			defer crypto.Wipe(key[:])
			if revealKey {
				fmt.Fprintln(cmd.OutOrStdout(), key.Hex())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", addr.Hex(), crypto.Fingerprint(key))
			return nil
		},
	}
	show.Flags().BoolVar(&revealKey, "reveal", false, "print the raw key")

	forget := &cobra.Command{
		Use:   "forget [address]",
		Short: "Delete the stored key; onboard again to restore it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			addr, err := keyAddress(cmd, args)
			if err != nil {
				return err
			}
			if err := appCtx.Keys.Clear(addr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot key for %s\n", addr.Hex())
			return nil
		},
	}

	cmd.AddCommand(show, forget)
	return cmd
}

func keyAddress(cmd *cobra.Command, args []string) (domain.Address, error) {
	if len(args) == 1 {
		return domain.ParseAddress(args[0])
	}
	s, err := loadSigner(cmd)
	if err != nil {
		return domain.Address{}, err
	}
	return s.Address(), nil
}
