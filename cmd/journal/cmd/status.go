package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the journal server",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cobraCmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	if err := c.Status(cobraCmd.Context()); err != nil {
		return err
	}
	fmt.Printf("Server %s is up\n", serverAddr)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
