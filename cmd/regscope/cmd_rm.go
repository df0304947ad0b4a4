package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/pkg/history"
)

var rmCmd = &cobra.Command{
	Use:   "rm <key> <name>",
	Short: "Delete a value from a projected key",
	Args:  cobra.ExactArgs(2),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path, err := resolveEditableKey(a, args[0])
	if err != nil {
		return err
	}
	if err := a.provider.DeleteValue(path, args[1]); err != nil {
		return err
	}

	rec := a.openRecorderOrWarn()
	if rec != nil {
		defer rec.Close()
	}
	record(rec, history.Entry{
		Op:        history.OpDeleteValue,
		KeyPath:   path.String(),
		ValueName: args[1],
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from %s\n", displayName(args[1]), path)
	return nil
}
