package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"vizctl/internal/vizio"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [up|down|mute]",
	Short: "Adjust the TV volume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key vizio.Key
		switch args[0] {
		case "up":
			key = vizio.KeyVolumeUp
		case "down":
			key = vizio.KeyVolumeDown
		case "mute":
			key = vizio.KeyMute
		default:
			return fmt.Errorf("unknown volume action: %s (use up, down or mute)", args[0])
		}

		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.PressKey(context.Background(), key)
		if err := checkResult(res, err, "volume "+args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Volume %s sent\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}
