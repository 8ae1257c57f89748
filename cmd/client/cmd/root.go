package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"relay/internal/network"
	"relay/pkg/logger"
)

var (
	serverAddr string
	clientName string
	logLevel   string
	rpcTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "relay-client",
	Short: "Client for the relay chat server",
	Long: `relay-client talks to a relay server over gRPC.

Available commands:
  hello     Call SayHello
  chat      Open a chat session, from stdin or with --demo
  mail      Send one message through the direct-mail gateway
  bench     Relay a burst of messages and report throughput
  health    Check the server health status

Use "relay-client [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup(os.Stderr, logLevel, "text")
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", network.DefaultServerAddr, "Server address in the format of host:port")
	rootCmd.PersistentFlags().StringVar(&clientName, "name", "", "Name announced to the server")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")
	rootCmd.PersistentFlags().DurationVar(&rpcTimeout, "timeout", 5*time.Second, "Timeout for unary calls")
}

func dial() (*network.Client, error) {
	client, err := network.Dial(serverAddr, clientName)
	if err != nil {
		return nil, err
	}
	log.Debugf("connected to %s as '%s'", serverAddr, clientName)
	return client, nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), rpcTimeout)
}
