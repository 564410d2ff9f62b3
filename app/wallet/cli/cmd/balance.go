package cmd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [account]",
	Short: "Print the balance of an account, or of the node's demo wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	var resp struct {
		Account string  `json:"account"`
		Balance float64 `json:"balance"`
	}

	path := "/v1/wallet/balance"
	if len(args) == 1 {
		path = "/v1/balances/list/" + url.PathEscape(args[0])
	}

	if err := send(http.MethodGet, path, nil, &resp); err != nil {
		return err
	}

	if resp.Account != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", resp.Account, resp.Balance)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Balance)
	return nil
}
