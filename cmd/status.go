package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show power, input and running app",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}
		ctx := context.Background()

		on, err := client.PowerState(ctx)
		if err != nil {
			return err
		}

		power := "OFF"
		rows := [][]string{}
		if on {
			power = "ON"
		}
		rows = append(rows, []string{"Power", power})

		// Input and app queries fail while the panel is warming up;
		// report what we have instead of bailing.
		if input, err := client.CurrentInput(ctx); err == nil {
			rows = append(rows, []string{"Input", input})
		} else {
			rows = append(rows, []string{"Input", "unavailable"})
		}

		if running, err := client.CurrentApp(ctx); err == nil {
			name := running.AppID
			for _, app := range client.Apps().Apps() {
				if app.AppID == running.AppID && app.Namespace == running.Namespace {
					name = app.Name
					break
				}
			}
			rows = append(rows, []string{"App", name})
		} else {
			rows = append(rows, []string{"App", "unavailable"})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Field", "Value"},
			rows,
			[]columnAlignment{alignLeft, alignLeft},
		))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
