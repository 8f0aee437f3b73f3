package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <email-id>",
		Short: "Create a calendar event from a meeting request email",
		Long: `Extract meeting details from a stored email and create a calendar
event from them. A confirmation reply is sent to the requester after the
event lands. Emails not classified as meeting requests are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			emailID := args[0]

			analysis, err := a.pipe.Analyze(ctx, emailID)
			if err != nil {
				return err
			}
			if analysis.Meeting == nil {
				return fmt.Errorf("email %s was not classified as a meeting request (%s)", emailID, analysis.Classification)
			}

			event, err := a.pipe.Schedule(ctx, emailID, *analysis.Meeting)
			if err != nil {
				return err
			}

			cmd.Printf("Event created: %s\n", event.Summary)
			cmd.Printf("  Start: %s\n", event.Start.Format("2006-01-02 15:04"))
			cmd.Printf("  End:   %s\n", event.End.Format("2006-01-02 15:04"))
			if event.HTMLLink != "" {
				cmd.Printf("  Link:  %s\n", event.HTMLLink)
			}
			return nil
		},
	}
	return cmd
}
