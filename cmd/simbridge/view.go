package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/luki/simbridge/internal/publish"
	"github.com/luki/simbridge/internal/store"
	"github.com/luki/simbridge/internal/viewer"
)

var viewList bool

var viewCmd = &cobra.Command{
	Use:   "view [day]",
	Short: "Browse recorded telemetry logs",
	Long: `Without arguments, view opens the interactive history browser. With a
day (YYYY-MM-DD) it prints that day's per-stream summary; --list shows
the recorded days.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Store.Dir

		if viewList {
			days, err := store.ListDays(dir)
			if err != nil {
				return err
			}
			for _, day := range days {
				rows, err := store.LoadDay(dir, day)
				if err != nil {
					return err
				}
				fmt.Printf("%s  %6d rows\n", day, len(rows))
			}
			return nil
		}

		if len(args) == 1 {
			return printDaySummary(dir, args[0])
		}

		viewer.Run(dir)
		return nil
	},
}

func printDaySummary(dir, day string) error {
	rows, err := store.LoadDay(dir, day)
	if err != nil {
		return err
	}

	type agg struct {
		count    int
		min, max float64
		sum      float64
	}
	streams := make(map[string]*agg)
	for _, r := range rows {
		a, ok := streams[r.Stream]
		if !ok {
			a = &agg{min: math.MaxFloat64, max: -math.MaxFloat64}
			streams[r.Stream] = a
		}
		a.count++
		a.sum += r.Value
		if r.Value < a.min {
			a.min = r.Value
		}
		if r.Value > a.max {
			a.max = r.Value
		}
	}

	var names []string
	for s := range streams {
		names = append(names, s)
	}
	sort.Strings(names)

	fmt.Printf("%s  (%d rows)\n", day, len(rows))
	fmt.Printf("%-24s %7s %8s %8s %8s\n", "stream", "count", "min", "avg", "max")
	for _, s := range names {
		a := streams[s]
		fmt.Printf("%-24s %7d %8.2f %8.2f %8.2f\n",
			publish.DisplayName(s), a.count, a.min, a.sum/float64(a.count), a.max)
	}
	return nil
}

func init() {
	viewCmd.Flags().BoolVar(&viewList, "list", false, "list recorded days instead of opening the browser")
	rootCmd.AddCommand(viewCmd)
}
