package cmd

import (
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <email-id>",
		Short: "Classify and summarize a stored email",
		Long: `Classify a stored email into a category and summarize it. When the
classification flags a meeting request, the meeting details are extracted
and, if a date is present, free calendar slots are suggested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			analysis, err := a.pipe.Analyze(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("From:           %s\n", analysis.Email.Sender)
			cmd.Printf("Subject:        %s\n", analysis.Email.Subject)
			cmd.Printf("Classification: %s\n", analysis.Classification)
			if analysis.Summary != "" {
				cmd.Printf("Summary:        %s\n", analysis.Summary)
			}

			if analysis.Meeting != nil {
				m := analysis.Meeting
				cmd.Println("\nMeeting request:")
				cmd.Printf("  Title:        %s\n", m.Title)
				cmd.Printf("  Date:         %s\n", m.Date)
				cmd.Printf("  Time:         %s\n", m.Time)
				cmd.Printf("  Duration:     %s\n", m.Duration)
				cmd.Printf("  Participants: %s\n", m.Participants)
				cmd.Printf("  Location:     %s\n", m.Location)
			}

			if len(analysis.Suggestions) > 0 {
				cmd.Println("\nAvailable slots:")
				for _, s := range analysis.Suggestions {
					cmd.Printf("  %s\n", s)
				}
			}
			return nil
		},
	}
	return cmd
}
