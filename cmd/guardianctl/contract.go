package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Guardian/internal/config"
	"github.com/MikeSquared-Agency/Guardian/internal/ledger"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Inspect the on-chain score registry through the ledger relay",
}

var contractStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the relay's last processed tick",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, timeout, err := ledgerClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		st, err := c.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tick %d (epoch %d)\n", st.LastProcessedTick.TickNumber, st.LastProcessedTick.Epoch)
		return nil
	},
}

var contractGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Read the score stored on chain for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, timeout, err := ledgerClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s, err := c.GetScore(ctx, args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

func init() {
	contractCmd.AddCommand(contractStatusCmd, contractGetCmd)
	rootCmd.AddCommand(contractCmd)
}

func ledgerClient() (*ledger.HTTPClient, time.Duration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load config: %w", err)
	}
	c := ledger.NewHTTPClient(cfg.Ledger.URL, ledger.Options{
		Token:         cfg.Ledger.Token,
		ContractIndex: cfg.Ledger.ContractIndex,
		Timeout:       cfg.LedgerTimeout(),
		RetryCount:    cfg.Ledger.RetryCount,
	})
	return c, cfg.LedgerTimeout() * time.Duration(cfg.Ledger.RetryCount+1), nil
}
