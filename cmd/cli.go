package cmd

import (
	"github.com/spf13/cobra"
	"vizctl/cmd/cli"
	"vizctl/internal/config"
)

var cliDebug bool

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Interactive terminal remote",
	Long: `Launch the interactive terminal remote. Saved credentials prefill
the setup screen; pairing from the TUI stores new ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(configPath)
		return cli.StartTUI(store, cliDebug || verbose)
	},
}

func init() {
	cliCmd.Flags().BoolVar(&cliDebug, "debug", false, "show the in-TUI log panel")
	rootCmd.AddCommand(cliCmd)
}
