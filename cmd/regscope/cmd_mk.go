package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/pkg/history"
)

var mkCmd = &cobra.Command{
	Use:   "mk <key> <name>",
	Short: "Create an empty subkey under a projected key",
	Args:  cobra.ExactArgs(2),
	RunE:  runMk,
}

func init() {
	rootCmd.AddCommand(mkCmd)
}

func runMk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path, err := resolveEditableKey(a, args[0])
	if err != nil {
		return err
	}
	if err := a.provider.CreateKey(path, args[1]); err != nil {
		return err
	}

	rec := a.openRecorderOrWarn()
	if rec != nil {
		defer rec.Close()
	}
	record(rec, history.Entry{
		Op:      history.OpCreateKey,
		KeyPath: path.Join(args[1]).String(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path.Join(args[1]))
	return nil
}
