package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"vizctl/internal/vizio"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Inspect and launch TV apps",
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List launchable apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The table is static; no TV or pairing needed to print it
		table, err := appTable()
		if err != nil {
			return err
		}

		rows := make([][]string, 0)
		for _, app := range table.Apps() {
			rows = append(rows, []string{app.Name, app.AppID, strconv.Itoa(app.Namespace)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"App", "ID", "Namespace"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
		return nil
	},
}

var appCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the running app",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		running, err := client.CurrentApp(context.Background())
		if err != nil {
			return err
		}

		name := running.AppID
		for _, app := range client.Apps().Apps() {
			if app.AppID == running.AppID && app.Namespace == running.Namespace {
				name = app.Name
				break
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (app_id=%s namespace=%d)\n", name, running.AppID, running.Namespace)
		return nil
	},
}

var appLaunchCmd = &cobra.Command{
	Use:   "launch [name]",
	Short: "Launch an app by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.LaunchApp(context.Background(), args[0])
		if errors.Is(err, vizio.ErrUnknownApp) {
			return fmt.Errorf("no app named %q (see 'vizctl app list')", args[0])
		}
		if err := checkResult(res, err, "launch app"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Launched %s\n", args[0])
		return nil
	},
}

func init() {
	appCmd.AddCommand(appListCmd)
	appCmd.AddCommand(appCurrentCmd)
	appCmd.AddCommand(appLaunchCmd)

	rootCmd.AddCommand(appCmd)
}
