package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "send <email-id>",
		Short: "Send a reply to a stored email",
		Long: `Send a reply to a stored email as part of its thread. The body comes
from --body, or from stdin when the flag is absent, so a draft can be
edited before sending:

  inboxpilot draft 18f2ab... > reply.txt
  $EDITOR reply.txt
  inboxpilot send 18f2ab... < reply.txt

The response is recorded in the store only after the provider confirms
the send.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if body == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read reply body from stdin: %w", err)
				}
				body = strings.TrimSpace(string(data))
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			replyID, err := a.pipe.Send(ctx, args[0], body)
			if err != nil {
				return err
			}
			cmd.Printf("Reply sent as %s.\n", replyID)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Reply body (read from stdin when omitted)")
	return cmd
}
