package cmd

import (
	"github.com/spf13/cobra"
)

func newDraftCmd() *cobra.Command {
	var withSearch bool

	cmd := &cobra.Command{
		Use:   "draft <email-id>",
		Short: "Draft a reply to a stored email",
		Long: `Generate a reply draft for a stored email. With --search, a web
search query is derived from the email and the results are fed into the
draft as grounding context. The draft is printed for review; nothing is
sent until 'inboxpilot send'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			result, err := a.pipe.Draft(ctx, args[0], withSearch)
			if err != nil {
				return err
			}

			if result.SearchContext != "" {
				cmd.Println(result.SearchContext)
				cmd.Println("---")
			}
			cmd.Println(result.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSearch, "search", false, "Ground the draft with web search results")
	return cmd
}
