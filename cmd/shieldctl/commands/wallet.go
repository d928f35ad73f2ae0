package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shieldwallet/internal/wallet"
)

var importKey string

// wallet new|address: manage the local signing key.
func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the local signing key",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create (or import with --import) the wallet key file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p) to seal the wallet key")
			}
			path := keyFilePath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			var (
				s   *wallet.LocalSigner
				err error
			)
			if importKey != "" {
				s, err = wallet.ParsePrivateKeyHex(importKey)
			} else {
				s, err = wallet.GenerateLocalSigner()
			}
			if err != nil {
				return err
			}
			if err := wallet.SaveKeyFile(path, passphrase, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nkey file: %s\n", s.Address().Hex(), path)
			return nil
		},
	}
	newCmd.Flags().StringVar(&importKey, "import", "", "hex private key to import instead of generating one")

	addrCmd := &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Address().Hex())
			return nil
		},
	}

	cmd.AddCommand(newCmd, addrCmd)
	return cmd
}
