package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"asset-sync/core/queue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workerCmd consumes units from the configured broker.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued notifications",
	Long: `Consumes single-asset units from Pub/Sub or Kafka one at a time and reconciles them.
Health and metrics are served on the configured port while the worker runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger

		consumer, err := queue.NewConsumer(ctx, rt.cfg.Queue, logg, rt.metrics)
		if err != nil {
			return err
		}
		defer consumer.Close()

		app := newApp(rt)
		go func() {
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Warn("Worker status server stopped", zap.Error(err))
			}
		}()
		defer app.Shutdown()

		logg.Info("Worker started", zap.String("transport", rt.cfg.Queue.Driver))
		err = consumer.Consume(ctx, rt.sync.Handle)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logg.Info("Worker stopped")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(workerCmd)
}
