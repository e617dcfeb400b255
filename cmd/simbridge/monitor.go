package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/luki/simbridge/internal/monitor"
	"github.com/luki/simbridge/internal/publish"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the bridge with a live TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cleanup, err := buildBridge(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		dataDir := ""
		if b.Disk != nil {
			dataDir = b.Disk.Dir()
		}

		p := tea.NewProgram(
			monitor.New(cfg.History.Capacity, cfg.Bridge.StatusThreshold, dataDir),
			tea.WithAltScreen(),
		)
		b.OnFrame = func(f publish.Frame) {
			p.Send(monitor.FrameMsg(f))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				p.Send(monitor.ErrMsg{Err: err})
			}
		}()

		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
