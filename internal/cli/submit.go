package cli

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strconv"

	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/LeJamon/tokendex/internal/rpc"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var (
	submitKey  string
	submitSeed string
)

var submitCmd = &cobra.Command{
	Use:   "submit <tx-json>",
	Short: "Sign a transaction and submit it to a running node",
	Long: `Sign a transaction JSON with a secp256k1 key and submit it over JSON-RPC.
A transaction without a Sequence gets the account's next sequence from the node.

Example:
  tokendexd submit --seed alice '{"TransactionType":"Mint","AssetID":1,"Amount":100}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kp, err := signingKey()
		if err != nil {
			return err
		}

		var compact bytes.Buffer
		if err := stdjson.Compact(&compact, []byte(args[0])); err != nil {
			return fmt.Errorf("invalid transaction JSON: %w", err)
		}
		// reject unknown types before anything is signed
		if _, err := tx.FromJSON(compact.Bytes()); err != nil {
			return err
		}

		client, err := clientFromFlags()
		if err != nil {
			return err
		}
		txJSON, err := client.fillSequence(kp.AccountID(), compact.Bytes())
		if err != nil {
			return err
		}
		result, err := client.call("submit", rpc.SignSubmit(kp, txJSON))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitKey, "key", "", "hex encoded private key")
	submitCmd.Flags().StringVar(&submitSeed, "seed", "", "derive the key from this seed")
	submitCmd.Flags().StringVar(&rpcURL, "rpc", "", "node RPC URL (default from config)")
	submitCmd.MarkFlagsMutuallyExclusive("key", "seed")
}

func signingKey() (*identity.KeyPair, error) {
	switch {
	case submitKey != "":
		return identity.KeyPairFromHex(submitKey)
	case submitSeed != "":
		return identity.DeriveKeyPair([]byte(submitSeed)), nil
	default:
		return nil, fmt.Errorf("one of --key or --seed is required")
	}
}

// fillSequence sets Sequence to account's next sequence unless txJSON has one
func (c *rpcClient) fillSequence(account identity.AccountID, txJSON []byte) ([]byte, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(txJSON, &fields); err != nil {
		return nil, fmt.Errorf("invalid transaction JSON: %w", err)
	}
	if _, ok := fields["Sequence"]; ok {
		return txJSON, nil
	}

	info, err := c.call("account_info", map[string]interface{}{"account": account.String()})
	if err != nil {
		return nil, err
	}
	seq, ok := info["sequence"].(float64)
	if !ok {
		return nil, fmt.Errorf("account_info: no sequence in %v", info)
	}
	fields["Sequence"] = jsoniter.RawMessage(strconv.FormatUint(uint64(seq), 10))
	return json.Marshal(fields)
}
