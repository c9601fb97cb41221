package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	reportStart string
	reportEnd   string
)

var reportCmd = &cobra.Command{
	Use:       "report <monthly|quarterly|yearly>",
	Short:     "Show a trade performance report",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"monthly", "quarterly", "yearly"},
	RunE:      runReport,
}

func runReport(cobraCmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	rows, err := c.Report(cobraCmd.Context(), args[0], reportStart, reportEnd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tGROSS R\tNET R\tTRADES\tWINS\tLOSSES\tWIN %\tAVG WIN\tAVG LOSS\tRR\tAWLR")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Period, row.GrossR, row.NetR,
			row.TotalTrades, row.Wins, row.Losses,
			row.WinPercentage, row.WinAverage, row.LossAverage,
			row.SimpleRR, row.AWLR)
	}
	return w.Flush()
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)
}
