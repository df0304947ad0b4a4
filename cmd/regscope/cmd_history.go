package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent edits made through regscope",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if !a.cfg.History.Enabled {
		return ErrHistoryDisabled
	}
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}
	defer rec.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := rec.List(limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tOP\tKEY\tVALUE\tDATA")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Op, e.KeyPath,
			e.ValueName, e.Data)
	}
	return w.Flush()
}
