package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"relay/internal/network"
)

var (
	benchMessages int
	benchIdle     time.Duration
	benchQuiet    bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Relay a burst of messages and report how many came back",
	RunE: func(cmd *cobra.Command, args []string) error {
		if clientName == "" {
			clientName = "bench"
		}

		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		opts := network.BenchOptions{Messages: benchMessages, Idle: benchIdle}
		if !benchQuiet {
			opts.Progress = cmd.ErrOrStderr()
		}

		result, err := client.Bench(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nsent %d, received %d, lost %d in %s (%.0f msg/s)\n",
			result.Sent, result.Received, result.Lost(), result.Elapsed.Round(time.Millisecond), result.Rate())
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchMessages, "messages", "n", 1000, "Number of messages to relay")
	benchCmd.Flags().DurationVar(&benchIdle, "idle", 2*time.Second, "Stop waiting after this long without a reply")
	benchCmd.Flags().BoolVarP(&benchQuiet, "quiet", "q", false, "Hide the progress bar")
	rootCmd.AddCommand(benchCmd)
}
