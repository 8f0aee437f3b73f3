package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/pipeline"
)

func newRefreshCmd() *cobra.Command {
	var (
		maxResults int64
		unreadOnly bool
		markRead   bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull recent emails into the record store",
		Long: `Fetch recent messages from Gmail and persist them, attachments
included. Re-running is safe: a message already in the store is updated,
not duplicated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if maxResults <= 0 {
				maxResults = a.cfg.Mail.MaxResults
			}

			emails, err := a.pipe.Refresh(ctx, pipeline.RefreshOptions{
				MaxResults: maxResults,
				UnreadOnly: unreadOnly,
				MarkRead:   markRead,
			})
			if err != nil {
				return err
			}

			for _, e := range emails {
				cmd.Printf("%s  %s  %s  %s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Sender, e.Subject)
			}
			cmd.Printf("Ingested %d emails.\n", len(emails))
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max", 0, "Maximum number of messages to pull (default from config)")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only pull unread messages")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark ingested messages as read")
	return cmd
}
