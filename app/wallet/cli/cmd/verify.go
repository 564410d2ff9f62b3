package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the pending transactions and the full chain",
	RunE:  verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	checks := []struct {
		name string
		path string
	}{
		{"mempool", "/v1/tx/uncommitted/verify"},
		{"chain", "/v1/chain/verify"},
	}

	var failed bool
	for _, check := range checks {
		var resp struct {
			Valid bool   `json:"valid"`
			Count int    `json:"count"`
			Error string `json:"error"`
		}
		if err := send(http.MethodGet, check.path, nil, &resp); err != nil {
			return err
		}

		switch resp.Valid {
		case true:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid: %d\n", check.name, resp.Count)
		default:
			failed = true
			fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %s\n", check.name, resp.Error)
		}
	}

	if failed {
		return fmt.Errorf("verification failed")
	}

	return nil
}
