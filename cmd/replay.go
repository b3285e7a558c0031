package cmd

import (
	"fmt"

	"asset-sync/core/queue"
	"asset-sync/feature/intake"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayDryRun bool

// replayCmd re-publishes archived notifications.
var replayCmd = &cobra.Command{
	Use:   "replay [date-prefix]",
	Short: "Replay archived notifications",
	Long: `Reads archived notifications from object storage and publishes them again through the
configured transport. The optional prefix narrows the archive, e.g. 2024/05 or 2024/05/17.

Examples:
  # List what would be replayed
  replay 2024/05/17 --dry-run

  # Replay a whole month
  replay 2024/05`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger

		if rt.archive == nil {
			return fmt.Errorf("replay requires storage to be enabled")
		}

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		keys, err := rt.archive.List(ctx, prefix)
		if err != nil {
			return err
		}
		logg.Info("Archived notifications found", zap.Int("count", len(keys)), zap.String("prefix", prefix))

		if replayDryRun {
			for _, key := range keys {
				fmt.Println(key)
			}
			return nil
		}

		publisher, err := queue.NewPublisher(ctx, rt.cfg.Queue, rt.sync.Handle, logg, rt.metrics)
		if err != nil {
			return err
		}
		defer publisher.Close()

		svc := intake.NewService(publisher, rt.archive, rt.metrics, logg)

		var replayed, units, failed int
		for _, key := range keys {
			body, err := rt.archive.Load(ctx, key)
			if err != nil {
				logg.Error("Failed to load archived notification", zap.String("key", key), zap.Error(err))
				failed++
				continue
			}
			result, err := svc.Replay(ctx, body)
			if err != nil {
				logg.Error("Replay failed", zap.String("key", key), zap.Error(err))
				failed++
				continue
			}
			replayed++
			units += result.Units
		}

		fmt.Println("\n=== Replay Summary ===")
		fmt.Printf("Archived: %d\n", len(keys))
		fmt.Printf("Replayed: %d\n", replayed)
		fmt.Printf("Units: %d\n", units)
		fmt.Printf("Failed: %d\n", failed)

		if failed > 0 {
			return fmt.Errorf("%d notifications failed to replay", failed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "List archived notifications without publishing")
}
