package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the headless bridge loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cleanup, err := buildBridge(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		zap.L().Info("bridge started",
			zap.String("serial_port", cfg.Serial.Port),
			zap.Int("interval_secs", cfg.Bridge.IntervalSecs),
		)

		err = b.Run(ctx)
		if errors.Is(err, context.Canceled) {
			zap.L().Info("bridge stopped")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
