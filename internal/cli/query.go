package cli

import (
	"fmt"
	"strconv"

	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <account> <asset-id>",
	Short: "Show the balance of one asset held by an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := identity.ParseAccountID(args[0])
		if err != nil {
			return err
		}
		assetID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return err
		}
		return query(cmd, "balance", map[string]interface{}{
			"account":  account.String(),
			"asset_id": assetID,
		})
	},
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show the pool reserves and LP supply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return query(cmd, "pool_info", nil)
	},
}

var lpBalanceCmd = &cobra.Command{
	Use:   "lp-balance <account>",
	Short: "Show the LP shares held by an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := identity.ParseAccountID(args[0])
		if err != nil {
			return err
		}
		return query(cmd, "lp_balance", map[string]interface{}{"account": account.String()})
	},
}

var exportLimit int

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every committed state entry as JSON lines",
	Long: `Page through ledger_data and write one {"index","data"} object per line,
in key order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		params := map[string]interface{}{"limit": exportLimit}
		for {
			result, err := client.call("ledger_data", params)
			if err != nil {
				return err
			}
			entries, _ := result["state"].([]interface{})
			for _, e := range entries {
				line, err := json.Marshal(e)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, string(line)); err != nil {
					return err
				}
			}

			marker, more := result["marker"]
			if !more {
				return nil
			}
			params = map[string]interface{}{"limit": exportLimit, "marker": marker}
		}
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportLimit, "limit", 256, "entries per ledger_data page")

	for _, cmd := range []*cobra.Command{balanceCmd, poolCmd, lpBalanceCmd, exportCmd} {
		cmd.Flags().StringVar(&rpcURL, "rpc", "", "node RPC URL (default from config)")
		rootCmd.AddCommand(cmd)
	}
}

func query(cmd *cobra.Command, method string, params interface{}) error {
	client, err := clientFromFlags()
	if err != nil {
		return err
	}
	result, err := client.call(method, params)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
