package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		limit    int
		threadID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored emails",
		Long: `List emails from the record store, newest first. With --thread,
list the messages of one thread in conversation order instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			if threadID != "" {
				thread, err := a.pipe.ListThread(ctx, threadID)
				if err != nil {
					return err
				}
				for _, e := range thread {
					cmd.Printf("%s  %s  %s  %s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Sender, e.Subject)
				}
				return nil
			}

			recent, err := a.pipe.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			for _, e := range recent {
				cmd.Printf("%s  %s  %s  %s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Sender, e.Subject)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of emails to list")
	cmd.Flags().StringVar(&threadID, "thread", "", "List one thread in conversation order")
	return cmd
}
