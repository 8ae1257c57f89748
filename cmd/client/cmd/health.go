package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"relay/internal/network"
)

var healthService string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the serving status of the relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		st, err := client.Health(ctx, healthService)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.String())
		if st != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("%s is %s", healthService, st)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthService, "service", network.GreeterService, "Service to check, empty for the whole server")
	rootCmd.AddCommand(healthCmd)
}
