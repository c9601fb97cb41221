package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file.xlsx>",
	Short: "Import trades from a spreadsheet",
	Long: `Upload a trade spreadsheet to the journal server.

The first sheet must contain a header row with at least the columns
name, setup, type, market, kite and position. Rows with a blank name
are skipped; rows failing individually are reported without aborting
the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cobraCmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	summary, err := c.Upload(cobraCmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Valid rows:        %d\n", summary.ValidRows)
	fmt.Printf("Skipped rows:      %d\n", summary.SkippedRows)
	fmt.Printf("Trades created:    %d\n", summary.TradesCreated)
	fmt.Printf("Buys created:      %d\n", summary.BuyTransactionsCreated)
	fmt.Printf("Sells created:     %d\n", summary.SellTransactionsCreated)
	fmt.Printf("Markets created:   %d\n", summary.MarketsCreated)
	fmt.Printf("Setups created:    %d\n", summary.SetupsCreated)
	fmt.Printf("Types created:     %d\n", summary.TypesCreated)
	fmt.Printf("Accounts created:  %d\n", summary.AccountsCreated)
	for _, rowErr := range summary.Errors {
		fmt.Printf("row %d failed: %s\n", rowErr.Row, rowErr.Reason)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
