package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mailText string

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Send one message to every connected chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if clientName == "" || mailText == "" {
			return fmt.Errorf("both --name and --text are required")
		}

		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		ack, err := client.Mail(ctx, clientName, mailText)
		if err != nil {
			return fmt.Errorf("DirectMail failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ack)
		return nil
	},
}

func init() {
	mailCmd.Flags().StringVar(&mailText, "text", "", "Message text")
	rootCmd.AddCommand(mailCmd)
}
