package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Guardian/internal/config"
	"github.com/MikeSquared-Agency/Guardian/internal/hermes"
)

var (
	eventsSubject string
	eventsURL     string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Watch Guardian domain events on hermes",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print events as they are published until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url := eventsURL
		if url == "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			url = cfg.Hermes.URL
		}
		if url == "" {
			return fmt.Errorf("no hermes URL configured")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
		client, err := hermes.NewNATSClient(ctx, url, logger)
		if err != nil {
			return err
		}
		defer client.Close()

		fmt.Fprintf(cmd.ErrOrStderr(), "tailing %s on %s\n", eventsSubject, url)
		return tailEvents(ctx, client, eventsSubject, cmd.OutOrStdout())
	},
}

func init() {
	eventsTailCmd.Flags().StringVar(&eventsSubject, "subject", hermes.SubjectAllEvents, "Subject filter, wildcards allowed")
	eventsTailCmd.Flags().StringVar(&eventsURL, "nats-url", "", "NATS URL (defaults to the configured hermes URL)")
	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}

// tailEvents writes every event on subject to w until ctx is done.
func tailEvents(ctx context.Context, client hermes.Client, subject string, w io.Writer) error {
	var mu sync.Mutex
	err := client.Subscribe(subject, func(subj string, data []byte) {
		line := formatEvent(time.Now(), subj, data)
		mu.Lock()
		defer mu.Unlock()
		_, _ = io.WriteString(w, line)
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// formatEvent renders one event as a header line followed by its payload.
// JSON payloads are indented; anything else is printed as is.
func formatEvent(at time.Time, subject string, data []byte) string {
	var body bytes.Buffer
	if err := json.Indent(&body, data, "  ", "  "); err != nil {
		body.Reset()
		body.Write(data)
	}
	return fmt.Sprintf("%s %s\n  %s\n", at.UTC().Format(time.RFC3339), subject, body.String())
}
