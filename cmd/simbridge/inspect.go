package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luki/simbridge/internal/uitree/uiatree"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Scrape the simulator once and show every candidate with its score",
	Long: `Inspect performs a single collection pass against the simulator window
and prints each numeric candidate with its label context and score,
followed by the reading the selection rules would produce. Use it to
verify the locked index and the keyword tables against a live
flowsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := uiatree.Connect(cfg.Sim.WindowTitle)
		if err != nil {
			return err
		}

		ec := cfg.Extract
		cands, err := ec.Collect(root)
		if err != nil {
			return err
		}

		filtered := ec.Filter(cands)
		dropped := len(cands) - len(filtered)

		fmt.Printf("%d candidates (%d fraction candidates filtered)\n\n", len(filtered), dropped)
		fmt.Printf("%4s  %6s  %-12s  %s\n", "#", "score", "text", "context")
		for i, s := range ec.ScoreAll(filtered) {
			marker := " "
			if i+1 == ec.LockedIndex {
				marker = "*"
			}
			fmt.Printf("%3d%s  %6d  %-12s  %s\n", i+1, marker, s.Score, s.Text, s.Context)
		}

		fmt.Println()
		if reading := ec.Select(filtered, time.Now()); reading != nil {
			fmt.Printf("selected: %.2f (source %s, confidence %d)\n",
				reading.Value, reading.Source, reading.Confidence)
		} else {
			fmt.Println("selected: none (no candidate qualified)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
