package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Score a launch proposal from a YAML or JSON file",
	Long:  "Score a launch proposal without touching the database. The input file uses the same field names as POST /api/simulate; JSON is accepted since it is valid YAML.",
	RunE:  runSimulate,
}

var (
	simulateFile   string
	simulateOutput string
)

func init() {
	simulateCmd.Flags().StringVarP(&simulateFile, "file", "f", "", "Path to the proposal file (- for stdin)")
	simulateCmd.Flags().StringVarP(&simulateOutput, "output", "o", "text", "Output format: text or json")
	_ = simulateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	var raw []byte
	var err error
	if simulateFile == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(simulateFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	req, err := parseProposal(raw)
	if err != nil {
		return err
	}

	res := scoring.NewScorer(slog.New(slog.NewTextHandler(io.Discard, nil))).Score(intake.FromSimulation(req))
	return writeResult(cmd.OutOrStdout(), simulateOutput, res)
}

// parseProposal decodes and validates a proposal document.
func parseProposal(raw []byte) (*intake.SimulateRequest, error) {
	var req intake.SimulateRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid proposal: %w", err)
	}
	return &req, nil
}

func writeResult(w io.Writer, format string, res scoring.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintf(w, "Score: %d (%s)\n", res.Score, res.Grade)
	fmt.Fprintf(w, "Recommendation: %s\n\n", res.Recommendation)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	b := res.Subscores
	fmt.Fprintf(tw, "Tokenomics\t%d/%d\n", b.Tokenomics, scoring.CapTokenomics)
	fmt.Fprintf(tw, "Vesting\t%d/%d\n", b.Vesting, scoring.CapVesting)
	fmt.Fprintf(tw, "Documentation\t%d/%d\n", b.Documentation, scoring.CapDocumentation)
	fmt.Fprintf(tw, "Team history\t%d/%d\n", b.TeamHistory, scoring.CapTeamHistory)
	fmt.Fprintf(tw, "Community\t%d/%d\n", b.Community, scoring.CapCommunity)
	fmt.Fprintf(tw, "Audit\t%d/%d\n", b.Audit, scoring.CapAudit)
	fmt.Fprintf(tw, "Launch readiness\t%d/%d\n", b.LaunchReadiness, scoring.CapLaunchReadiness)
	if err := tw.Flush(); err != nil {
		return err
	}

	c := res.SuggestedConfig
	fmt.Fprintf(w, "\nCap: $%d - $%d  Fee: %.1f%%  Access: %s\n", c.CapMin, c.CapMax, c.FeeTierPercent, c.AccessTier)

	if len(res.Flags) > 0 {
		fmt.Fprintln(w, "\nFlags:")
		for _, f := range res.Flags {
			fmt.Fprintf(w, "  [%s] %s\n", f.Severity, f.Text)
		}
	}
	return nil
}
