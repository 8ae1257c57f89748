package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helloCmd = &cobra.Command{
	Use:   "hello [name]",
	Short: "Call SayHello and print the greeting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "Tonic"
		if len(args) == 1 {
			name = args[0]
		}

		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		msg, err := client.Hello(ctx, name)
		if err != nil {
			return fmt.Errorf("SayHello failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "RESPONSE=%s\n", msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(helloCmd)
}
