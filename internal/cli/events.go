package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"garage/internal/amqp"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print record-added events from the message broker until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.AMQPURL == "" {
				return errors.New("AMQP_URL is not set")
			}
			client, err := amqp.NewClient(cmd.Context(), a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue)
			if err != nil {
				return fmt.Errorf("connect to broker: %w", err)
			}

			parent, stop := context.WithCancel(cmd.Context())
			defer stop()
			ctx, done := GracefulShutdown(parent, a.logger, 10*time.Second, func() {
				if err := client.Close(); err != nil {
					a.logger.Warn("Failed to close AMQP client", "component", "amqp", "error", err)
				}
			})

			out := cmd.OutOrStdout()
			err = client.ConsumeRecordAdded(ctx, func(m *amqp.RecordAddedMessage) error {
				_, err := fmt.Fprintf(out, "%s vehicle %d record %d: %s on %s\n",
					m.Timestamp.Format(time.RFC3339), m.VehicleID, m.RecordID, m.ServiceType, m.ServiceDate)
				return err
			})
			// A consumer failure also ends the command.
			stop()
			WaitForShutdown(ctx, done)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
