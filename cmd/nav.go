package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"vizctl/internal/vizio"
)

// navKeys covers the D-pad and the menu cluster
var navKeys = map[string]vizio.Key{
	"up":    vizio.KeyUp,
	"down":  vizio.KeyDown,
	"left":  vizio.KeyLeft,
	"right": vizio.KeyRight,
	"ok":    vizio.KeyOK,
	"back":  vizio.KeyBack,
	"exit":  vizio.KeyExit,
	"menu":  vizio.KeyMenu,
	"home":  vizio.KeyHome,
	"info":  vizio.KeyInfo,
}

var navCmd = &cobra.Command{
	Use:   "nav [up|down|left|right|ok|back|exit|menu|home|info]",
	Short: "Navigate the TV menus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := navKeys[args[0]]
		if !ok {
			return fmt.Errorf("unknown nav action: %s", args[0])
		}

		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.PressKey(context.Background(), key)
		if err := checkResult(res, err, "nav "+args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(navCmd)
}
