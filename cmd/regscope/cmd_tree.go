package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/pkg/projection"
	"github.com/regscope/regscope/pkg/registry"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the projected registry tree",
	Long: `Print the filtered registry tree: configured keys (marked with *),
their ancestors, and the immediate children of each configured key.
Keys that cannot be enumerated are reported on stderr; the rest of the
tree is still printed.`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().Bool("paths", false, "Print full key paths, one per line, instead of an indented tree")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	fullPaths, _ := cmd.Flags().GetBool("paths")

	for _, root := range a.projector.Roots() {
		printSubtree(cmd.OutOrStdout(), a.projector, root, 0, fullPaths)
	}
	return nil
}

func printSubtree(w io.Writer, p *projection.Projector, node *projection.Node, depth int, fullPaths bool) {
	if fullPaths {
		fmt.Fprintf(w, "%s%s\n", node.Path, kindMarker(node))
	} else {
		fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), node.Name, kindMarker(node))
	}

	// An exposed child has nothing visible beneath it, so skip the
	// store round trip.
	if node.Kind == projection.ExposedChild {
		return
	}
	children, err := p.Expand(node)
	if err != nil {
		var ae *registry.AccessError
		if errors.As(err, &ae) {
			fmt.Fprintf(os.Stderr, "Warning: cannot enumerate %s: %v\n", ae.Path, ae.Err)
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	for _, child := range children {
		printSubtree(w, p, child, depth+1, fullPaths)
	}
}

func kindMarker(node *projection.Node) string {
	if node.Kind == projection.Target {
		return " *"
	}
	return ""
}
