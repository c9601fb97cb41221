package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"trade-journal-go/internal/database"
	"trade-journal-go/internal/store"
)

var userDSN string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage journal users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a user and print the generated API token",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

func runUserAdd(cobraCmd *cobra.Command, args []string) error {
	db, err := database.NewDatabase(userDSN)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	user, err := store.New(db).CreateUser(context.Background(), args[0], token)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q (id %d)\n", user.Name, user.ID)
	fmt.Printf("API token: %s\n", token)
	return nil
}

func init() {
	userAddCmd.Flags().StringVar(&userDSN, "dsn", "journal.db", "database DSN")
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}
