// simbridge couples a physical ESP32 temperature/humidity probe to a
// DWSIM flowsheet running on the same desktop: each cycle the probe
// reading is typed into the simulator's inlet stream, the simulated
// outlet temperature is scraped back out of the GUI, and the combined
// telemetry goes to InfluxDB, an MQTT dashboard and a local CSV log.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luki/simbridge/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "simbridge",
	Short: "Bridge a hardware sensor probe into a DWSIM flowsheet and publish the results",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		return config.InitLogger(c.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
