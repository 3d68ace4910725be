package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"vizctl/internal/config"
	"vizctl/internal/logger"
	"vizctl/internal/vizio"
)

var (
	verbose      bool
	configPath   string
	hostFlag     string
	tokenFlag    string
	appTablePath string
	log          = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "vizctl",
	Short: "Vizctl - control Vizio SmartCast TVs from the command line",
	Long: `Vizctl drives Vizio SmartCast TVs over their local REST API.
Pair once to obtain an auth token, then send power, volume, navigation,
channel, input and app commands, probe undocumented key codes, serve a
LAN HTTP remote, or use the interactive TUI.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
			log = logger.New()
			log.Debug().Str("config", configPath).Msg("Verbose logging enabled")
		}
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "credentials file path")
	rootCmd.PersistentFlags().StringVarP(&hostFlag, "host", "H", "", "TV address (IP or IP:port), overrides stored credentials")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "auth token, overrides stored credentials")
	rootCmd.PersistentFlags().StringVar(&appTablePath, "apps-file", "", "YAML file with extra app descriptors")
}

// loadCredentials reads the stored credentials, if any
func loadCredentials() (*config.Store, *config.Credentials, error) {
	store := config.NewStore(configPath)
	creds, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, creds, nil
}

// newClient builds a TV client from flags and stored credentials. Every
// operation except pairing requires a token.
func newClient(requireToken bool) (*vizio.Client, error) {
	_, creds, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	host := hostFlag
	if host == "" {
		host = creds.IP
	}
	if host == "" {
		return nil, fmt.Errorf("no TV address: pass --host or pair first with 'vizctl pair <ip>'")
	}

	token := tokenFlag
	if token == "" {
		token = creds.AuthToken
	}
	if requireToken && token == "" {
		return nil, fmt.Errorf("not paired with %s: run 'vizctl pair %s' first", host, host)
	}

	client := vizio.NewClient(host, token, verbose)
	if creds.MAC != "" {
		client.SetMAC(creds.MAC)
	}

	table, err := appTable()
	if err != nil {
		return nil, err
	}
	client.SetAppTable(table)

	return client, nil
}

// appTable resolves the launchable-app table: the built-in descriptors,
// overlaid from --apps-file when given
func appTable() (*vizio.AppTable, error) {
	if appTablePath == "" {
		return vizio.DefaultApps(), nil
	}
	return vizio.LoadAppTable(appTablePath)
}

// checkResult turns a TV result into a command error when it failed
func checkResult(res *vizio.Result, err error, action string) error {
	if err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	}
	if !res.Success {
		return fmt.Errorf("%s failed: %s", action, res.Describe())
	}
	return nil
}
