// Command guardianctl scores launch proposals offline and runs operator tasks
// against the Guardian database and ledger relay.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "guardianctl",
	Short:        "Guardian operator CLI",
	Long:         "guardianctl evaluates token launch proposals locally, applies database migrations and inspects scores on the ledger relay.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
