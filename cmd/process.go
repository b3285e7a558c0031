package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"asset-sync/core/notification"
	assetsync "asset-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// processCmd reconciles the assets of a notification stored on disk.
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process a notification file",
	Long: `Reads a notification from disk and reconciles every asset it names in order, without
going through the fan-out transport. The file may hold a full notification or a single
split unit. Results are printed as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		n, err := notification.Decode(data)
		if err != nil {
			return err
		}
		units, err := unitsOf(n)
		if err != nil {
			return err
		}

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		results := make([]*assetsync.NotificationResult, 0, len(units))
		for _, unit := range units {
			result, err := rt.sync.ProcessNotification(ctx, unit)
			if err != nil {
				rt.logger.Error("Processing stopped", zap.Error(err))
				return err
			}
			results = append(results, result)
		}

		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// unitsOf splits a full notification; an already split unit is returned as is.
func unitsOf(n notification.Notification) ([]notification.Notification, error) {
	units, err := n.Split()
	if err == nil {
		return units, nil
	}
	if !errors.Is(err, notification.ErrMalformed) {
		return nil, err
	}
	if _, rerr := n.Resource(); rerr != nil {
		return nil, err
	}
	return []notification.Notification{n}, nil
}

func init() {
	RootCmd.AddCommand(processCmd)
}
