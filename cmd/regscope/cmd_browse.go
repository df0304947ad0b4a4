package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the projected registry tree interactively",
	Long: `Browse the projected registry tree in the terminal. Keys are expanded
lazily as they are opened, so only the levels you look at are read from
the store.

Keys: up/down or j/k to move, enter/space to expand or collapse,
v to show values of the selected key, r to refresh it, q to quit.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotATerminal
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newBrowseModel(a), tea.WithAltScreen()).Run()
	return err
}
