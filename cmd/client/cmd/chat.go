package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"relay/internal/network"
)

const demoMessages = 10

var (
	chatDemo        bool
	chatPublishOnly bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open a chat session",
	Long: `Open a bidirectional chat session. Every line read from stdin is sent as a
message and every relayed message is printed as "<name>: <message>".

Examples:
  relay-client chat --name alice                 # interactive
  relay-client chat --demo                       # greet, send "Hello 0".."Hello 9", print the replies
  echo hi | relay-client chat --publish-only     # send without receiving`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		in := cmd.InOrStdin()
		opts := network.ChatOptions{PublishOnly: chatPublishOnly}

		if chatDemo {
			ctx, cancel := withTimeout(cmd)
			msg, err := client.Hello(ctx, "Tonic")
			cancel()
			if err != nil {
				return fmt.Errorf("SayHello failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "RESPONSE=%s\n", msg)

			in = network.DemoLines(demoMessages)
			if !chatPublishOnly {
				opts.Limit = demoMessages
			}
		}

		return client.Chat(cmd.Context(), in, cmd.OutOrStdout(), opts)
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatDemo, "demo", false, "Send ten numbered greetings instead of reading stdin")
	chatCmd.Flags().BoolVar(&chatPublishOnly, "publish-only", false, "Only send, do not receive relayed messages")
	rootCmd.AddCommand(chatCmd)
}
