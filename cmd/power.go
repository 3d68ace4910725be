package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var powerCmd = &cobra.Command{
	Use:   "power [on|off|toggle|state]",
	Short: "Control or query TV power",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		ctx := context.Background()
		switch args[0] {
		case "on":
			res, err := client.PowerOn(ctx)
			if err := checkResult(res, err, "power on"); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TV turned on")
		case "off":
			res, err := client.PowerOff(ctx)
			if err := checkResult(res, err, "power off"); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TV turned off")
		case "toggle":
			res, err := client.PowerToggle(ctx)
			if err := checkResult(res, err, "power toggle"); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Power toggled")
		case "state":
			on, err := client.PowerState(ctx)
			if err != nil {
				return err
			}
			if on {
				fmt.Fprintln(cmd.OutOrStdout(), "TV is ON")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "TV is OFF")
			}
		default:
			return fmt.Errorf("unknown power action: %s (use on, off, toggle or state)", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(powerCmd)
}
