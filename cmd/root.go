package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Persistent flags shared by all subcommands.
var (
	flagConfig      string
	flagAccount     string
	flagLogLevel    string
	flagLogFormat   string
	flagMetrics     bool
	flagMetricsAddr string
)

// rootCmd represents the base command for the inboxpilot application
var rootCmd = &cobra.Command{
	Use:   "inboxpilot",
	Short: "Email assistant that triages your inbox with a local LLM",
	Long: `inboxpilot ingests recent Gmail messages into a local record store,
classifies and summarizes them with an LLM, drafts search-grounded replies,
extracts meeting requests into calendar events, and posts review
notifications to Slack.

Every action is operator-driven: nothing is sent, scheduled, or marked
read without an explicit command.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxpilot version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/inboxpilot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAccount, "account", "", "Google account name to use (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&flagMetrics, "metrics", false, "Serve Prometheus metrics on a dedicated port")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", ":9090", "Address for the metrics server")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDraftCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newNotifyCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inboxpilot version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("inboxpilot version %s\n", version)
		},
	}
}
