package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var miner string

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the mempool into a new block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&miner, "miner", "m", "Miner1", "Account credited with the mining reward.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	body := struct {
		MinerAddress string `json:"miner_address"`
	}{
		MinerAddress: miner,
	}

	var blk struct {
		Number       uint64 `json:"index"`
		Hash         string `json:"hash"`
		Nonce        uint64 `json:"nonce"`
		Transactions []any  `json:"transactions"`
	}
	if err := send(http.MethodPost, "/v1/mining/mine", body, &blk); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "block %d: hash %s: nonce %d: txs %d\n", blk.Number, blk.Hash, blk.Nonce, len(blk.Transactions))
	return nil
}
