package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"vizctl/internal/vizio"
)

var inputCmd = &cobra.Command{
	Use:   "input",
	Short: "Inspect and switch TV inputs",
}

var inputListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the TV's inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		inputs, err := client.ListInputs(context.Background())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(inputs))
		for _, in := range inputs {
			rows = append(rows, []string{in.CName, in.Name})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Input", "Label"},
			rows,
			[]columnAlignment{alignLeft, alignLeft},
		))
		return nil
	},
}

var inputCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active input",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		current, err := client.CurrentInput(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), current)
		return nil
	},
}

var inputSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Switch to an input by name or label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.SelectInput(context.Background(), args[0])
		if errors.Is(err, vizio.ErrUnknownInput) {
			return fmt.Errorf("no input named %q (see 'vizctl input list')", args[0])
		}
		if err := checkResult(res, err, "select input"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", args[0])
		return nil
	},
}

func init() {
	inputCmd.AddCommand(inputListCmd)
	inputCmd.AddCommand(inputCurrentCmd)
	inputCmd.AddCommand(inputSetCmd)

	rootCmd.AddCommand(inputCmd)
}
