package cli

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen [seed]",
	Short: "Generate a signing key and its account",
	Long: `Generate a secp256k1 key pair. With a seed argument the key is derived
deterministically, so the same seed always yields the same account.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var seed []byte
		if len(args) == 1 {
			seed = []byte(args[0])
		} else {
			seed = make([]byte, 32)
			if _, err := rand.Read(seed); err != nil {
				return err
			}
		}

		kp := identity.DeriveKeyPair(seed)
		return printJSON(cmd.OutOrStdout(), map[string]string{
			"account":     kp.AccountID().String(),
			"public_key":  hex.EncodeToString(kp.PublicKey()),
			"private_key": kp.PrivateKeyHex(),
		})
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
