package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"trade-journal-go/cmd/journal/cmd"
)

func main() {
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
