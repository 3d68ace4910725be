package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"vizctl/internal/vizio"
)

var channelCmd = &cobra.Command{
	Use:   "channel [number|up|down|prev]",
	Short: "Change the tuner channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		ctx := context.Background()
		switch args[0] {
		case "up":
			res, err := client.PressKey(ctx, vizio.KeyChannelUp)
			return checkResult(res, err, "channel up")
		case "down":
			res, err := client.PressKey(ctx, vizio.KeyChannelDown)
			return checkResult(res, err, "channel down")
		case "prev":
			res, err := client.PressKey(ctx, vizio.KeyPrevChannel)
			return checkResult(res, err, "previous channel")
		}

		if err := client.SendChannel(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tuned to channel %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelCmd)
}
