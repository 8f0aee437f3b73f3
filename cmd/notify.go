package cmd

import (
	"github.com/spf13/cobra"
)

func newNotifyCmd() *cobra.Command {
	var (
		draft   bool
		meeting bool
	)

	cmd := &cobra.Command{
		Use:   "notify <email-id>",
		Short: "Post a Slack notification for a stored email",
		Long: `Post a review notification to the configured Slack channel.

By default the new-email shape is posted (sender, subject, summary, a
View Email button). With --draft, a reply draft is generated and posted
with Send/Edit buttons. With --meeting, meeting details are extracted
and posted with Accept/Decline buttons.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			emailID := args[0]

			switch {
			case draft:
				result, err := a.pipe.Draft(ctx, emailID, false)
				if err != nil {
					return err
				}
				if err := a.pipe.NotifyDraft(ctx, emailID, result.Text); err != nil {
					return err
				}
				cmd.Println("Draft preview posted for review.")

			case meeting:
				analysis, err := a.pipe.Analyze(ctx, emailID)
				if err != nil {
					return err
				}
				if analysis.Meeting == nil {
					cmd.Println("Email was not classified as a meeting request; nothing posted.")
					return nil
				}
				if err := a.pipe.NotifyMeeting(ctx, emailID, *analysis.Meeting); err != nil {
					return err
				}
				cmd.Println("Meeting request posted for review.")

			default:
				if err := a.pipe.NotifyEmail(ctx, emailID); err != nil {
					return err
				}
				cmd.Println("Email notification posted.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&draft, "draft", false, "Post a reply draft with Send/Edit buttons")
	cmd.Flags().BoolVar(&meeting, "meeting", false, "Post extracted meeting details with Accept/Decline buttons")
	cmd.MarkFlagsMutuallyExclusive("draft", "meeting")
	return cmd
}
