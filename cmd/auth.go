package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxpilot/internal/google"
	"github.com/teemow/inboxpilot/internal/instrumentation"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth [authorization-code]",
		Short: "Authorize Google API access",
		Long: `Authorize inboxpilot to access Gmail and Calendar for an account.

Run without arguments to print the authorization URL. Visit it, grant
access, and run the command again with the code Google gives you.
Tokens are cached per account, so multiple accounts can be authorized
side by side with --account.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			account := flagAccount
			if account == "" {
				account = "default"
			}

			if len(args) == 0 {
				if google.HasTokenForAccount(account) {
					cmd.Printf("Account %q is already authorized. To re-authorize, visit:\n\n  %s\n\nand run 'inboxpilot auth <code>' with the code.\n", account, google.GetAuthURL())
					return nil
				}
				cmd.Printf("Visit the URL below, grant access, and run 'inboxpilot auth <code>' with the code:\n\n  %s\n", google.GetAuthURL())
				return nil
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version

			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			if err := google.SaveToken(ctx, account, args[0]); err != nil {
				provider.Metrics().RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
				return fmt.Errorf("authorization failed: %w", err)
			}
			provider.Metrics().RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)

			cmd.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}
	return cmd
}
