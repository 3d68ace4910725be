package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"vizctl/internal/probe"
	"vizctl/internal/vizio"
)

var (
	keyAction    string
	keyRecord    bool
	probeDBPath  string
	historyLimit int
	historyOK    bool
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Send remote key commands",
	Long: `Send remote key commands to the TV. Named keys cover the stock
remote; raw mode sends arbitrary (codeset, code) pairs for discovering
undocumented codes, optionally recording the outcome.`,
}

var keySendCmd = &cobra.Command{
	Use:   "send [name]",
	Short: "Send a named key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := vizio.LookupKey(args[0])
		if !ok {
			return fmt.Errorf("unknown key: %s (see 'vizctl key list')", args[0])
		}

		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.PressKey(context.Background(), key)
		if err := checkResult(res, err, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent %s\n", args[0])
		return nil
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known key names and codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0)
		for _, name := range vizio.KeyNames() {
			key, _ := vizio.LookupKey(name)
			rows = append(rows, []string{
				name,
				strconv.Itoa(key.Codeset),
				strconv.Itoa(key.Code),
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Name", "Codeset", "Code"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
		return nil
	},
}

var keyRawCmd = &cobra.Command{
	Use:   "raw [codeset] [code]",
	Short: "Send a raw (codeset, code) key for code discovery",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		codeset, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid codeset: %s", args[0])
		}
		code, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid code: %s", args[1])
		}

		action := vizio.Action(strings.ToUpper(keyAction))
		if !action.Valid() {
			return fmt.Errorf("invalid action: %s (use KEYPRESS, KEYDOWN or KEYUP)", keyAction)
		}

		client, err := newClient(true)
		if err != nil {
			return err
		}

		res, err := client.SendKey(context.Background(), codeset, code, action)
		if err != nil {
			return err
		}

		// Discovery wants the raw vendor response either way
		fmt.Fprintf(cmd.OutOrStdout(), "codeset=%d code=%d action=%s -> %s\n",
			codeset, code, action, res.Describe())

		if keyRecord {
			store, err := probe.Open(probeDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			p := &probe.Probe{
				Codeset: codeset,
				Code:    code,
				Action:  string(action),
				Success: res.Success,
				Detail:  res.Describe(),
			}
			if err := store.Record(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded probe #%d in %s\n", p.ID, probeDBPath)
		}

		return nil
	},
}

var keyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded key probes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := probe.Open(probeDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var probes []probe.Probe
		if historyOK {
			probes, err = store.Successes(historyLimit)
		} else {
			probes, err = store.List(historyLimit)
		}
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(probes))
		for _, p := range probes {
			ok := "no"
			if p.Success {
				ok = "yes"
			}
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				strconv.Itoa(p.Codeset),
				strconv.Itoa(p.Code),
				p.Action,
				ok,
				p.Detail,
				p.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"ID", "Codeset", "Code", "Action", "Accepted", "Detail", "When"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	},
}

func init() {
	keyRawCmd.Flags().StringVarP(&keyAction, "action", "a", "KEYPRESS", "key action: KEYPRESS, KEYDOWN or KEYUP")
	keyRawCmd.Flags().BoolVar(&keyRecord, "record", false, "record the probe outcome")
	keyRawCmd.Flags().StringVar(&probeDBPath, "probe-db", "vizctl-probes.db", "probe log database path")
	keyHistoryCmd.Flags().StringVar(&probeDBPath, "probe-db", "vizctl-probes.db", "probe log database path")
	keyHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "maximum probes to list")
	keyHistoryCmd.Flags().BoolVar(&historyOK, "accepted", false, "only show probes the TV accepted")

	keyCmd.AddCommand(keySendCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyRawCmd)
	keyCmd.AddCommand(keyHistoryCmd)

	rootCmd.AddCommand(keyCmd)
}
