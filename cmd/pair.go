package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"vizctl/internal/config"
	"vizctl/internal/vizio"
	"vizctl/internal/wol"
)

const pinAttempts = 3

var pairCmd = &cobra.Command{
	Use:   "pair [host]",
	Short: "Pair with a TV and store its auth token",
	Long: `Pair with a Vizio SmartCast TV. The TV displays a 4-digit PIN on
screen; enter it when prompted. On success the auth token is written to the
credentials file, replacing any previous pairing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, creds, err := loadCredentials()
		if err != nil {
			return err
		}

		host := hostFlag
		if len(args) == 1 {
			host = args[0]
		}
		if host == "" {
			host = creds.IP
		}
		if host == "" {
			return fmt.Errorf("no TV address: vizctl pair <ip>")
		}

		ctx := context.Background()
		client := vizio.NewClient(host, "", verbose)

		fmt.Fprintf(cmd.OutOrStdout(), "Pairing with %s...\n", client.Address())
		session, err := client.BeginPair(ctx)
		if err != nil {
			return fmt.Errorf("could not start pairing: %w (is the TV on and reachable?)", err)
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		var token string
		for attempt := 1; attempt <= pinAttempts; attempt++ {
			fmt.Fprint(cmd.OutOrStdout(), "Enter the 4-digit PIN shown on the TV: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read PIN: %w", err)
			}

			token, err = client.CompletePair(ctx, session, strings.TrimSpace(line))
			if err == nil {
				break
			}
			if !errors.Is(err, vizio.ErrPairingFailed) {
				return err
			}
			// Wrong PIN or expired session; the stored credentials are untouched
			if attempt == pinAttempts {
				return fmt.Errorf("giving up after %d attempts: %w", pinAttempts, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v, try again.\n", err)
		}

		newCreds := &config.Credentials{
			IP:        host,
			AuthToken: token,
		}
		if mac, err := wol.MACFromARP(stripPort(host)); err == nil {
			newCreds.MAC = mac
		}

		if err := store.Save(newCreds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Paired. Credentials saved to %s\n", store.Path())

		// Exercise the token right away so a bad pairing shows up now
		client.SetAuthToken(token)
		if on, err := client.PowerState(ctx); err == nil {
			state := "OFF"
			if on {
				state = "ON"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connection verified, TV is %s\n", state)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: paired but could not verify connection: %v\n", err)
		}

		return nil
	},
}

// stripPort drops an explicit :port for ARP lookup
func stripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}

func init() {
	rootCmd.AddCommand(pairCmd)
}
